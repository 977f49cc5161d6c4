package quote

// Directory is the ordered list of companies available for quoting.
// Names are unique; the order is the order of first appearance.
type Directory struct {
	companies []Company
	index     map[string]int // name -> position
}

func NewDirectory() *Directory {
	return &Directory{index: make(map[string]int)}
}

// Add appends c, or replaces the symbol of an existing company with the
// same name in place.
func (d *Directory) Add(c Company) {
	if i, ok := d.index[c.Name]; ok {
		d.companies[i].Symbol = c.Symbol
		return
	}
	d.index[c.Name] = len(d.companies)
	d.companies = append(d.companies, c)
}

func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.companies)
}

// At returns the company at position i.
func (d *Directory) At(i int) (Company, bool) {
	if i < 0 || i >= d.Len() {
		return Company{}, false
	}
	return d.companies[i], true
}

func (d *Directory) Symbol(name string) (string, bool) {
	if d == nil {
		return "", false
	}
	i, ok := d.index[name]
	if !ok {
		return "", false
	}
	return d.companies[i].Symbol, true
}

// Companies returns a copy of the ordered list.
func (d *Directory) Companies() []Company {
	if d == nil {
		return nil
	}
	out := make([]Company, len(d.companies))
	copy(out, d.companies)
	return out
}
