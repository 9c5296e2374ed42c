package invest

import "strings"

// Recommend returns the names of catalog entries admitting the given profile,
// in catalog declaration order. An entry is admitted iff the age falls inside
// its inclusive age range, the horizon matches (or the entry accepts both),
// the period meets the entry's minimum, and the investment type matches (or
// the entry accepts both). Horizon and type are matched case-insensitively;
// unknown values simply match nothing.
func (c *Catalog) Recommend(age int, horizon string, period int, investmentType string) []string {
	horizon = strings.ToLower(strings.TrimSpace(horizon))
	investmentType = strings.ToLower(strings.TrimSpace(investmentType))

	recommended := make([]string, 0, len(c.options))
	for _, opt := range c.options {
		ageOK := opt.AgeMin <= age && age <= opt.AgeMax
		horizonOK := opt.Horizon == horizon || opt.Horizon == "both"
		periodOK := period >= opt.MinPeriod
		typeOK := opt.Type == investmentType || opt.Type == "both"

		if ageOK && horizonOK && periodOK && typeOK {
			recommended = append(recommended, opt.Name)
		}
	}
	return recommended
}
