package adf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adf-relay/internal/common/config"
	"adf-relay/internal/common/logger"
	"adf-relay/internal/lead"
)

func newTransformer(t *testing.T, dialect string) *Transformer {
	t.Helper()
	cfg := config.ADFConfig{Dialect: dialect}
	return NewTransformer(cfg, logger.NewTestLogger(t))
}

func newDriveCentricTransformer(t *testing.T) *Transformer {
	t.Helper()
	cfg := config.ADFConfig{Dialect: "drivecentric"}
	cfg.Vendor.Name = "Sunset Motors"
	cfg.Vendor.ContactName = "Sales Desk"
	cfg.Provider.Name = "Lead Relay"
	cfg.Provider.Service = "Lead Import"
	return NewTransformer(cfg, logger.NewTestLogger(t))
}

func transform(t *testing.T, tr *Transformer, leads ...lead.Lead) string {
	t.Helper()
	out, err := tr.Transform(leads)
	require.NoError(t, err)
	return string(out)
}

func TestTransformEmptyInput(t *testing.T) {
	tr := newTransformer(t, "generic")

	_, err := tr.Transform(nil)
	assert.ErrorIs(t, err, ErrNoLeads)

	_, err = tr.Transform([]lead.Lead{})
	assert.ErrorIs(t, err, ErrNoLeads)
}

func TestTransformIDOnlyGeneric(t *testing.T) {
	out := transform(t, newTransformer(t, "generic"), lead.Lead{ID: "abc123"})

	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, "<id>abc123</id>")
	assert.NotContains(t, out, "<customer>")
	assert.NotContains(t, out, "<vehicle")
	assert.NotContains(t, out, "<notes>")
	assert.NotContains(t, out, "<tag>")
	assert.NotContains(t, out, "<vendor>")
	assert.NotContains(t, out, "<provider>")
}

func TestTransformIDOnlyDriveCentric(t *testing.T) {
	out := transform(t, newTransformer(t, "drivecentric"), lead.Lead{ID: "abc123"})

	assert.Equal(t, 2, strings.Count(out, ">abc123</id>"))
	assert.Contains(t, out, `<id source="DriveCentric">abc123</id>`)
	assert.NotContains(t, out, "<customer>")
	assert.NotContains(t, out, "<requestdate>")
}

func TestTransformExampleLead(t *testing.T) {
	out := transform(t, newTransformer(t, "generic"), lead.Lead{
		ID:        "42",
		FirstName: "Ana",
		Tags:      []string{"hot", "callback"},
	})

	assert.Contains(t, out, "<id>42</id>")
	assert.Contains(t, out, `<name part="first">Ana</name>`)
	assert.NotContains(t, out, `part="last"`)

	hot := strings.Index(out, "<tag>hot</tag>")
	callback := strings.Index(out, "<tag>callback</tag>")
	require.GreaterOrEqual(t, hot, 0)
	require.Greater(t, callback, hot)
}

func TestTransformIdempotent(t *testing.T) {
	tr := newDriveCentricTransformer(t)
	leads := []lead.Lead{
		{ID: "1", FirstName: "A", MobilePhone: "555", Tags: []string{"x"}},
		{ID: "2", Email: "b@example.com", DateAdded: "2024-05-01T09:30:00.123Z"},
	}

	first, err := tr.Transform(leads)
	require.NoError(t, err)
	second, err := tr.Transform(leads)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestTransformProspectPerRecordInOrder(t *testing.T) {
	out := transform(t, newTransformer(t, "generic"),
		lead.Lead{ID: "first"},
		lead.Lead{ID: "second"},
		lead.Lead{ID: "third"},
	)

	assert.Equal(t, 3, strings.Count(out, "<prospect>"))
	assert.Less(t, strings.Index(out, "first"), strings.Index(out, "second"))
	assert.Less(t, strings.Index(out, "second"), strings.Index(out, "third"))
}

func TestTransformEmailOnlyLead(t *testing.T) {
	out := transform(t, newTransformer(t, "generic"), lead.Lead{Email: "lead@example.com"})

	assert.Contains(t, out, "<email>lead@example.com</email>")
	assert.NotContains(t, out, "<name")
	assert.NotContains(t, out, "<id>")
}

func TestTransformIDSourceAttribute(t *testing.T) {
	out := transform(t, newTransformer(t, "generic"), lead.Lead{ID: "7", ContactSource: "Website"})
	assert.Contains(t, out, `<id source="Website">7</id>`)

	out = transform(t, newTransformer(t, "generic"), lead.Lead{ID: "7"})
	assert.Contains(t, out, "<id>7</id>")
}

func TestTransformRequestDateTruncation(t *testing.T) {
	out := transform(t, newTransformer(t, "drivecentric"), lead.Lead{
		ID:        "1",
		DateAdded: "2024-05-01T09:30:00.123Z",
	})
	assert.Contains(t, out, "<requestdate>2024-05-01T09:30:00</requestdate>")

	out = transform(t, newTransformer(t, "drivecentric"), lead.Lead{
		ID:        "1",
		DateAdded: "2024-05-01",
	})
	assert.Contains(t, out, "<requestdate>2024-05-01</requestdate>")
}

func TestTransformPhoneMappingDriveCentric(t *testing.T) {
	out := transform(t, newTransformer(t, "drivecentric"), lead.Lead{
		ID:          "1",
		HomePhone:   "111",
		MobilePhone: "222",
		WorkPhone:   "333",
		Phone:       "444",
	})

	assert.Contains(t, out, `<phone type="home">111</phone>`)
	assert.Contains(t, out, `<phone type="mobile">222</phone>`)
	assert.Contains(t, out, `<phone type="work">333</phone>`)
	assert.NotContains(t, out, "444")

	home := strings.Index(out, `type="home"`)
	mobile := strings.Index(out, `type="mobile"`)
	work := strings.Index(out, `type="work"`)
	assert.Less(t, home, mobile)
	assert.Less(t, mobile, work)
}

func TestTransformPhoneVoiceFallback(t *testing.T) {
	out := transform(t, newTransformer(t, "drivecentric"), lead.Lead{ID: "1", Phone: "555-0100"})
	assert.Contains(t, out, `<phone type="voice">555-0100</phone>`)
}

func TestTransformGenericSinglePhone(t *testing.T) {
	out := transform(t, newTransformer(t, "generic"), lead.Lead{ID: "1", MobilePhone: "555-0100"})

	assert.Contains(t, out, "<phone>555-0100</phone>")
	assert.NotContains(t, out, "type=")
}

func TestTransformVehicleGeneric(t *testing.T) {
	out := transform(t, newTransformer(t, "generic"), lead.Lead{
		ID:      "1",
		Vehicle: &lead.Vehicle{Year: "2021", Make: "Toyota"},
	})

	assert.Contains(t, out, `<vehicle interest="buy">`)
	assert.Contains(t, out, "<year>2021</year>")
	assert.Contains(t, out, "<make>Toyota</make>")
	assert.NotContains(t, out, "<model>")
	assert.NotContains(t, out, "<vin>")
	assert.NotContains(t, out, "<stock>")
}

func TestTransformVehicleDriveCentricPlaceholders(t *testing.T) {
	out := transform(t, newTransformer(t, "drivecentric"), lead.Lead{
		ID:      "1",
		Vehicle: &lead.Vehicle{Make: "Honda"},
	})

	assert.Contains(t, out, `<vehicle interest="buy" status="used">`)
	assert.Contains(t, out, "<vin></vin>")
	assert.Contains(t, out, "<stock></stock>")

	out = transform(t, newTransformer(t, "drivecentric"), lead.Lead{
		ID:      "1",
		Vehicle: &lead.Vehicle{Make: "Honda", VIN: "4T1BF1FK5HU"},
	})
	assert.Contains(t, out, "<vin>4T1BF1FK5HU</vin>")
}

func TestTransformCommentsJoining(t *testing.T) {
	out := transform(t, newDriveCentricTransformer(t), lead.Lead{
		ID:       "1",
		Comments: "Wants financing",
		AIMemory: "Asked about trade-in",
	})
	assert.Contains(t, out, "Wants financing")
	assert.Contains(t, out, "Asked about trade-in")

	out = transform(t, newDriveCentricTransformer(t), lead.Lead{ID: "1", AIMemory: "Memory only"})
	assert.Contains(t, out, "<comments>Memory only</comments>")
}

func TestTransformGenericNotes(t *testing.T) {
	out := transform(t, newTransformer(t, "generic"), lead.Lead{ID: "1", AIMemory: "Remember this"})
	assert.Contains(t, out, "<notes>Remember this</notes>")
}

func TestTransformStaticBlocksDriveCentric(t *testing.T) {
	out := transform(t, newDriveCentricTransformer(t), lead.Lead{ID: "1", ContactSource: "Website"})

	assert.Contains(t, out, "<vendorname>Sunset Motors</vendorname>")
	assert.Contains(t, out, `<name part="full">Sales Desk</name>`)
	assert.Contains(t, out, "<name>Lead Relay</name>")
	assert.Contains(t, out, "<service>Lead Import</service>")
	assert.Contains(t, out, "<sourceTypeName>Website</sourceTypeName>")
}

func TestTransformTimestampOnlyLead(t *testing.T) {
	out := transform(t, newTransformer(t, "drivecentric"), lead.Lead{
		DateAdded: "2024-05-01T09:30:00.123Z",
	})

	assert.Contains(t, out, "<requestdate>2024-05-01T09:30:00</requestdate>")
	assert.NotContains(t, out, "<id")
	assert.NotContains(t, out, "<customer>")
}

func TestTransformSourceOnlyLead(t *testing.T) {
	out := transform(t, newDriveCentricTransformer(t), lead.Lead{ContactSource: "Website"})

	assert.Contains(t, out, "<sourceTypeName>Website</sourceTypeName>")
	assert.NotContains(t, out, "<id")
}

func TestTransformSkipsBlankRecords(t *testing.T) {
	tr := newTransformer(t, "generic")

	out := transform(t, tr, lead.Lead{}, lead.Lead{ID: "kept"})
	assert.Equal(t, 1, strings.Count(out, "<prospect>"))
	assert.Contains(t, out, "kept")

	_, err := tr.Transform([]lead.Lead{{}, {}})
	assert.ErrorIs(t, err, ErrNoLeads)
}

func TestTransformNoEmptyElements(t *testing.T) {
	out := transform(t, newDriveCentricTransformer(t), lead.Lead{
		ID:        "1",
		FirstName: "Ana",
	})

	assert.NotContains(t, out, "<email>")
	assert.NotContains(t, out, "<phone")
	assert.NotContains(t, out, "<address1>")
	assert.NotContains(t, out, "<comments>")
	assert.NotContains(t, out, "<tag>")
}
