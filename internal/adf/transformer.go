package adf

import (
	"errors"
	"fmt"

	"adf-relay/internal/common/config"
	commonerrors "adf-relay/internal/common/errors"
	"adf-relay/internal/common/logger"
	"adf-relay/internal/lead"
)

// Dialect selects the prospect finisher applied on top of the shared skeleton.
type Dialect string

const (
	DialectGeneric      Dialect = "generic"
	DialectDriveCentric Dialect = "drivecentric"

	driveCentricSource = "DriveCentric"
)

// ErrNoLeads means no prospect could be built, so no document exists.
var ErrNoLeads = errors.New("no leads to transform")

// Transformer maps lead records into an ADF document. It holds only static
// per-deployment values so Transform stays deterministic.
type Transformer struct {
	dialect  Dialect
	vendor   *Vendor
	provider Provider
	log      logger.Logger
}

func NewTransformer(cfg config.ADFConfig, log logger.Logger) *Transformer {
	t := &Transformer{
		dialect: Dialect(cfg.Dialect),
		provider: Provider{
			Name:    cfg.Provider.Name,
			Service: cfg.Provider.Service,
		},
		log: log,
	}

	if cfg.Vendor.Name != "" || cfg.Vendor.ContactName != "" {
		t.vendor = &Vendor{VendorName: cfg.Vendor.Name}
		if cfg.Vendor.ContactName != "" {
			t.vendor.Contact = &VendorContact{
				Name: Name{Part: "full", Value: cfg.Vendor.ContactName},
			}
		}
	}

	return t
}

func (t *Transformer) Dialect() string {
	return string(t.dialect)
}

// Transform renders the leads as one indented ADF document, one prospect per
// record in input order. Records that carry no mappable data are skipped and
// logged; they never abort the batch. ErrNoLeads is returned when nothing
// remains.
func (t *Transformer) Transform(leads []lead.Lead) ([]byte, error) {
	if len(leads) == 0 {
		return nil, ErrNoLeads
	}

	doc := Document{}
	for i, l := range leads {
		prospect, err := t.buildProspect(l)
		if err != nil {
			t.log.Warn("Skipping unmappable lead record", map[string]interface{}{
				"index":   i,
				"lead_id": l.ID,
				"error":   err.Error(),
			})
			continue
		}
		doc.Prospects = append(doc.Prospects, prospect)
	}

	if len(doc.Prospects) == 0 {
		return nil, ErrNoLeads
	}

	return doc.Render()
}

func (t *Transformer) buildProspect(l lead.Lead) (Prospect, error) {
	if isBlank(l) {
		return Prospect{}, commonerrors.NewTransformInputInvalidError("record carries no mappable fields")
	}

	p := Prospect{Tags: l.Tags}

	if l.ID != "" {
		p.IDs = append(p.IDs, ID{Source: l.ContactSource, Value: l.ID})
	}

	contact := Contact{
		Email:      l.Email,
		Address1:   l.Address1,
		City:       l.City,
		State:      l.State,
		PostalCode: l.PostalCode,
	}
	if l.FirstName != "" {
		contact.Names = append(contact.Names, Name{Part: "first", Value: l.FirstName})
	}
	if l.LastName != "" {
		contact.Names = append(contact.Names, Name{Part: "last", Value: l.LastName})
	}

	switch t.dialect {
	case DialectDriveCentric:
		t.finishDriveCentric(&p, l, contact)
	default:
		t.finishGeneric(&p, l, contact)
	}

	return p, nil
}

// finishGeneric completes the skeleton for the plain ADF consumer: single
// untyped phone, prospect-level notes, no static blocks.
func (t *Transformer) finishGeneric(p *Prospect, l lead.Lead, contact Contact) {
	if phone := firstNonEmpty(l.Phone, l.MobilePhone, l.HomePhone, l.WorkPhone); phone != "" {
		contact.Phones = append(contact.Phones, Phone{Value: phone})
	}

	if l.Vehicle != nil {
		p.Vehicle = &Vehicle{
			Interest: "buy",
			Year:     l.Vehicle.Year,
			Make:     l.Vehicle.Make,
			Model:    l.Vehicle.Model,
		}
	}

	if !contactEmpty(contact) {
		p.Customer = &Customer{Contact: &contact}
	}

	p.Notes = l.Note()
}

// finishDriveCentric completes the skeleton for the DriveCentric importer:
// duplicated id, truncated requestdate, typed phones, used-vehicle attrs with
// the vin and stock placeholders, customer-level comments, and the static
// provider and vendor blocks.
func (t *Transformer) finishDriveCentric(p *Prospect, l lead.Lead, contact Contact) {
	if l.ID != "" {
		p.IDs = append(p.IDs, ID{Source: driveCentricSource, Value: l.ID})
	}

	if l.DateAdded != "" {
		p.RequestDate = truncateRequestDate(l.DateAdded)
	}

	for _, m := range []struct {
		value     string
		phoneType string
	}{
		{l.HomePhone, "home"},
		{l.MobilePhone, "mobile"},
		{l.WorkPhone, "work"},
	} {
		if m.value != "" {
			contact.Phones = append(contact.Phones, Phone{Type: m.phoneType, Value: m.value})
		}
	}
	if len(contact.Phones) == 0 && l.Phone != "" {
		contact.Phones = append(contact.Phones, Phone{Type: "voice", Value: l.Phone})
	}

	if l.Vehicle != nil {
		vin := l.Vehicle.VIN
		empty := ""
		p.Vehicle = &Vehicle{
			Interest: "buy",
			Status:   "used",
			Year:     l.Vehicle.Year,
			Make:     l.Vehicle.Make,
			Model:    l.Vehicle.Model,
			VIN:      &vin,
			Stock:    &empty,
		}
	}

	comments := joinComments(l.Comments, l.AIMemory)
	if !contactEmpty(contact) || comments != "" {
		p.Customer = &Customer{Comments: comments}
		if !contactEmpty(contact) {
			p.Customer.Contact = &contact
		}
	}

	provider := t.provider
	provider.SourceTypeName = l.ContactSource
	if provider != (Provider{}) {
		p.Provider = &provider
	}
	p.Vendor = t.vendor
}

func isBlank(l lead.Lead) bool {
	return l.ID == "" && l.FirstName == "" && l.LastName == "" &&
		l.Phone == "" && l.HomePhone == "" && l.MobilePhone == "" && l.WorkPhone == "" &&
		l.Email == "" && l.Address1 == "" && l.City == "" && l.State == "" &&
		l.PostalCode == "" && l.Vehicle == nil && len(l.Tags) == 0 &&
		l.Comments == "" && l.AIMemory == "" &&
		l.ContactSource == "" && l.DateAdded == ""
}

func contactEmpty(c Contact) bool {
	return len(c.Names) == 0 && len(c.Phones) == 0 && c.Email == "" &&
		c.Address1 == "" && c.City == "" && c.State == "" && c.PostalCode == ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// truncateRequestDate keeps the "2006-01-02T15:04:05" prefix of an upstream
// timestamp; shorter values pass through untouched.
func truncateRequestDate(ts string) string {
	if len(ts) > 19 {
		return ts[:19]
	}
	return ts
}

func joinComments(primary, memory string) string {
	switch {
	case primary != "" && memory != "":
		return fmt.Sprintf("%s\n\n%s", primary, memory)
	case primary != "":
		return primary
	default:
		return memory
	}
}
