package catalog

// defaultProducts is the built-in GLP-1 receptor agonist product set with
// NDCs for all marketed strengths.
var defaultProducts = []Product{
	{
		Name:         "Wegovy",
		Molecule:     "semaglutide",
		Indication:   "obesity",
		Manufacturer: "Novo Nordisk",
		NDCs:         []string{"00169451701", "00169453001", "00169457401", "00169459301", "00169476401"},
	},
	{
		Name:         "Ozempic",
		Molecule:     "semaglutide",
		Indication:   "diabetes",
		Manufacturer: "Novo Nordisk",
		NDCs:         []string{"00169406001", "00169396701", "00169482301"},
	},
	{
		Name:         "Zepbound",
		Molecule:     "tirzepatide",
		Indication:   "obesity",
		Manufacturer: "Eli Lilly",
		NDCs:         []string{"00002466601", "00002466701", "00002466801", "00002466901", "00002467001", "00002467101"},
	},
	{
		Name:         "Mounjaro",
		Molecule:     "tirzepatide",
		Indication:   "diabetes",
		Manufacturer: "Eli Lilly",
		NDCs:         []string{"00002230001", "00002240001", "00002250001", "00002260001", "00002270001", "00002280001"},
	},
}

// Default returns the built-in GLP-1 catalog. The product set is disjoint by
// construction, so this cannot fail.
func Default() *Catalog {
	c, err := New(defaultProducts)
	if err != nil {
		panic("catalog: default product set invalid: " + err.Error())
	}
	return c
}
