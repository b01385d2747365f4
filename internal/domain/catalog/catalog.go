package catalog

import (
	"strings"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// Service is static reference data. A zero duration marks the phone-only
// consultation, which never reaches slot or duration math.
type Service struct {
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
	// Short services booked alone are only offered on the half hour.
	Short bool `json:"short"`
}

func (s Service) PhoneOnly() bool { return s.DurationMinutes == 0 }

const PhoneConsultation = "phone_consultation"

var defaultServices = []Service{
	{Name: "haircut", DurationMinutes: 45},
	{Name: "beard", DurationMinutes: 30},
	{Name: "haircut_beard", DurationMinutes: 60},
	{Name: "coloring", DurationMinutes: 90},
	{Name: "hair_wash", DurationMinutes: 15, Short: true},
	{Name: "face_trim", DurationMinutes: 15, Short: true},
	{Name: "wax", DurationMinutes: 15, Short: true},
	{Name: PhoneConsultation, DurationMinutes: 0},
}

type Catalog struct {
	services []Service
	byName   map[string]Service
}

func New(services []Service) *Catalog {
	c := &Catalog{
		services: append([]Service(nil), services...),
		byName:   make(map[string]Service, len(services)),
	}
	for _, s := range services {
		c.byName[s.Name] = s
	}
	return c
}

func Default() *Catalog { return New(defaultServices) }

func (c *Catalog) List() []Service {
	return append([]Service(nil), c.services...)
}

func (c *Catalog) Lookup(name string) (Service, bool) {
	s, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	return s, ok
}

// Selection is a validated, ordered list of requested services.
type Selection struct {
	Services []Service
}

// Resolve validates a requested service list against the catalog.
func (c *Catalog) Resolve(names []string) (Selection, error) {
	if len(names) == 0 {
		return Selection{}, httperr.Validation("empty_services")
	}

	out := make([]Service, 0, len(names))
	phoneOnly := 0
	for _, n := range names {
		s, ok := c.Lookup(n)
		if !ok {
			return Selection{}, httperr.Validation("unknown_service")
		}
		if s.PhoneOnly() {
			phoneOnly++
		}
		out = append(out, s)
	}

	if phoneOnly > 0 && phoneOnly != len(out) {
		return Selection{}, httperr.Validation("phone_only_must_be_alone")
	}

	return Selection{Services: out}, nil
}

func (s Selection) TotalDuration() int {
	total := 0
	for _, svc := range s.Services {
		total += svc.DurationMinutes
	}
	return total
}

// PhoneOnly means the request must be answered with contact instructions.
func (s Selection) PhoneOnly() bool {
	return len(s.Services) > 0 && s.TotalDuration() == 0
}

// SingleShort is the half-hour-only case: exactly one short service.
func (s Selection) SingleShort() bool {
	return len(s.Services) == 1 && s.Services[0].Short
}

func (s Selection) Names() []string {
	names := make([]string, len(s.Services))
	for i, svc := range s.Services {
		names[i] = svc.Name
	}
	return names
}
