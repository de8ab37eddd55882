// Package scoring ranks leads by sales priority.
//
// A score is the sum of four independent lookups (industry, company size,
// budget range, project timeline). Values missing from a factor's table get
// that factor's Unknown points. Scores are stored on the lead whenever it is
// created or updated so that listing can sort on a column.
package scoring

import (
	"fmt"
	"os"

	"lead-capture-backend/models"

	"gopkg.in/yaml.v3"
)

// MaxScore is the ceiling shown to sales staff. The default table tops out at 40.
const MaxScore = 50

// Factor maps the values of one categorical attribute to points.
type Factor struct {
	Points  map[string]int `yaml:"points"`
	Unknown int            `yaml:"unknown"`
}

func (f Factor) lookup(value string) int {
	if p, ok := f.Points[value]; ok {
		return p
	}
	return f.Unknown
}

type Table struct {
	Industry        Factor `yaml:"industry"`
	CompanySize     Factor `yaml:"company_size"`
	BudgetRange     Factor `yaml:"budget_range"`
	ProjectTimeline Factor `yaml:"project_timeline"`
}

// DefaultTable returns a fresh copy of the standard weights.
func DefaultTable() Table {
	return Table{
		Industry: Factor{
			Points: map[string]int{
				string(models.IndustryPowerUtilities): 10,
				string(models.IndustryDefense):        10,
				string(models.IndustrySecurity):       9,
				string(models.IndustryManufacturing):  8,
				string(models.IndustryResearch):       6,
			},
			Unknown: 3,
		},
		CompanySize: Factor{
			Points: map[string]int{
				string(models.CompanySizeEnterprise): 10,
				string(models.CompanySizeLarge):      8,
				string(models.CompanySizeMedium):     6,
				string(models.CompanySizeSmall):      4,
				string(models.CompanySizeStartup):    2,
			},
			Unknown: 3,
		},
		BudgetRange: Factor{
			Points: map[string]int{
				string(models.BudgetOver1m):     10,
				string(models.Budget500kTo1m):   8,
				string(models.Budget100kTo500k): 6,
				string(models.BudgetUnder100k):  3,
			},
			Unknown: 2,
		},
		ProjectTimeline: Factor{
			Points: map[string]int{
				string(models.TimelineImmediate): 10,
				string(models.TimelineShortTerm): 8,
				string(models.TimelineLongTerm):  4,
			},
			Unknown: 2,
		},
	}
}

var defaultTable = DefaultTable()

// Score computes a lead score from its four categorical attributes using the default table.
func Score(industry, companySize, budget, timeline string) int {
	return defaultTable.Score(industry, companySize, budget, timeline)
}

func (t Table) Score(industry, companySize, budget, timeline string) int {
	return t.Industry.lookup(industry) +
		t.CompanySize.lookup(companySize) +
		t.BudgetRange.lookup(budget) +
		t.ProjectTimeline.lookup(timeline)
}

// ScoreLead computes the score for a lead without modifying it.
func (t Table) ScoreLead(l *models.Lead) int {
	return t.Score(deref(l.Industry), deref(l.CompanySize), deref(l.BudgetRange), deref(l.ProjectTimeline))
}

// Apply stores the computed score on the lead and returns it.
func (t Table) Apply(l *models.Lead) int {
	l.LeadScore = t.ScoreLead(l)
	return l.LeadScore
}

// LoadTable reads overrides from a YAML file on top of the default table.
// Factors or values absent from the file keep their default points.
func LoadTable(path string) (Table, error) {
	table := DefaultTable()
	if path == "" {
		return table, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return table, fmt.Errorf("read scoring config: %w", err)
	}

	var overrides struct {
		Industry        *Factor `yaml:"industry"`
		CompanySize     *Factor `yaml:"company_size"`
		BudgetRange     *Factor `yaml:"budget_range"`
		ProjectTimeline *Factor `yaml:"project_timeline"`
	}
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return table, fmt.Errorf("parse scoring config: %w", err)
	}

	merge(&table.Industry, overrides.Industry)
	merge(&table.CompanySize, overrides.CompanySize)
	merge(&table.BudgetRange, overrides.BudgetRange)
	merge(&table.ProjectTimeline, overrides.ProjectTimeline)

	return table, nil
}

func merge(dst *Factor, src *Factor) {
	if src == nil {
		return
	}
	for k, v := range src.Points {
		dst.Points[k] = v
	}
	if src.Unknown != 0 {
		dst.Unknown = src.Unknown
	}
}

func deref[T ~string](p *T) string {
	if p == nil {
		return ""
	}
	return string(*p)
}
