package sponsors

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strings"

	"sponsor-scout/internal/models"
)

// Required columns, in the order they appear in the database file.
var columns = []string{
	"company_id", "name", "category", "niches", "description",
	"ideal_creator", "audience", "pain_point", "why_sponsor",
	"pricing_range", "website", "funding", "region",
}

// Database is the read-only table of candidate sponsor companies. It is
// loaded once at startup and safe to share across concurrent requests:
// nothing mutates it after Load returns.
type Database struct {
	order     []string
	companies map[string]*models.SponsorCompany
}

// Load reads the sponsor database from a CSV file. The load is all or
// nothing: any missing column or malformed row fails the whole load.
func Load(path string) (*Database, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sponsor database %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read sponsor database header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, col := range columns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("sponsor database is missing required column %q", col)
		}
	}

	db := &Database{companies: make(map[string]*models.SponsorCompany)}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse sponsor database: %w", err)
	}

	for i, row := range rows {
		field := func(name string) string {
			return strings.TrimSpace(row[index[name]])
		}

		id := field("company_id")
		if id == "" {
			return nil, fmt.Errorf("sponsor database row %d has an empty company_id", i+2)
		}
		if _, exists := db.companies[id]; exists {
			return nil, fmt.Errorf("sponsor database row %d duplicates company_id %q", i+2, id)
		}
		for _, col := range columns {
			if field(col) == "" {
				return nil, fmt.Errorf("sponsor database row %d (%s) has an empty %s", i+2, id, col)
			}
		}

		db.order = append(db.order, id)
		db.companies[id] = &models.SponsorCompany{
			ID:           id,
			Name:         field("name"),
			Category:     field("category"),
			Niches:       field("niches"),
			Description:  field("description"),
			IdealCreator: field("ideal_creator"),
			Audience:     field("audience"),
			PainPoint:    field("pain_point"),
			WhySponsor:   field("why_sponsor"),
			PricingRange: field("pricing_range"),
			Website:      field("website"),
			Funding:      field("funding"),
			Region:       field("region"),
		}
	}

	if len(db.order) == 0 {
		return nil, fmt.Errorf("sponsor database %s contains no companies", path)
	}

	log.Printf("Loaded %d sponsor companies from %s", len(db.order), path)
	return db, nil
}

// Len returns the number of companies.
func (d *Database) Len() int {
	return len(d.order)
}

// Get looks up one company by id.
func (d *Database) Get(id string) (*models.SponsorCompany, bool) {
	c, ok := d.companies[id]
	return c, ok
}

// Companies returns all companies in stored order.
func (d *Database) Companies() []*models.SponsorCompany {
	out := make([]*models.SponsorCompany, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.companies[id])
	}
	return out
}

// FormatForPrompt renders the whole table as prompt text, one fixed-field
// block per company separated by blank lines. The field order is part of the
// contract with the model: changing it changes model behavior.
func (d *Database) FormatForPrompt() string {
	blocks := make([]string, 0, len(d.order))

	for _, id := range d.order {
		c := d.companies[id]
		blocks = append(blocks, fmt.Sprintf(
			"Company: %s\n"+
				"Category: %s\n"+
				"Niches: %s\n"+
				"What they do: %s\n"+
				"Ideal creators: %s\n"+
				"Audience: %s\n"+
				"Pain point solved: %s\n"+
				"Why they sponsor: %s\n"+
				"Typical pricing: %s\n"+
				"Region: %s\n"+
				"Website: %s",
			c.Name, c.Category, c.Niches, c.Description, c.IdealCreator,
			c.Audience, c.PainPoint, c.WhySponsor, c.PricingRange,
			c.Region, c.Website))
	}

	return strings.Join(blocks, "\n\n")
}
