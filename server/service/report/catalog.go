package report

import "github.com/pkg/errors"

// Site is one valid submission target: a coffee shop staff can report for.
type Site struct {
	ID   int32
	Name string
}

// Catalog is the immutable registry of submission targets. It is loaded once
// at process start and never mutated; selection input is matched against the
// display names exactly, with no fuzzy matching.
type Catalog struct {
	sites  []Site
	byName map[string]Site
}

// NewCatalog builds a catalog from the given sites, preserving their order.
// Both ids and names must be unique.
func NewCatalog(sites []Site) (*Catalog, error) {
	byName := make(map[string]Site, len(sites))
	byID := make(map[int32]struct{}, len(sites))
	for _, site := range sites {
		if _, ok := byID[site.ID]; ok {
			return nil, errors.Errorf("duplicate site id %d", site.ID)
		}
		if _, ok := byName[site.Name]; ok {
			return nil, errors.Errorf("duplicate site name %q", site.Name)
		}
		byID[site.ID] = struct{}{}
		byName[site.Name] = site
	}
	return &Catalog{
		sites:  sites,
		byName: byName,
	}, nil
}

// DefaultCatalog returns the built-in registry of all 36 coffee shops.
func DefaultCatalog() *Catalog {
	catalog, err := NewCatalog(defaultSites)
	if err != nil {
		// The built-in list is validated by tests; reaching this is a bug.
		panic(err)
	}
	return catalog
}

// LookupByName returns the site whose display name exactly matches text.
func (c *Catalog) LookupByName(text string) (Site, bool) {
	site, ok := c.byName[text]
	return site, ok
}

// All returns every site in definition order.
func (c *Catalog) All() []Site {
	return c.sites
}

// Names returns every display name in definition order, for rendering the
// selection keyboard.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.sites))
	for _, site := range c.sites {
		names = append(names, site.Name)
	}
	return names
}

var defaultSites = []Site{
	{1, "Кофейня №1 (Рахлина, 5)"},
	{2, "Кофейня №2 (Тукая, 62)"},
	{3, "Кофейня №3 (Татарстана, 53А)"},
	{4, "Кофейня №4 (Московская, 22)"},
	{5, "Кофейня №5 (Мира, 30Б)"},
	{6, "Кофейня №6 (Калинина, 32)"},
	{7, "Кофейня №7 (М.Гареева, 9А)"},
	{8, "Кофейня №8 (Р.Гареева, 96)"},
	{9, "Кофейня №9 (Гафури, 5)"},
	{10, "Кофейня №10 (Аббасова, 8)"},
	{11, "Кофейня №11 (Аббасова, 9)"},
	{12, "Кофейня №12 (ТЦ МОКИ)"},
	{13, "Кофейня №13 (ТЦ Горки)"},
	{14, "Кофейня №14 (ТЦ МЕГА)"},
	{15, "Кофейня №15 (ТЦ Южный)"},
	{16, "Кофейня №16 (ТЦ ПаркХаус 1)"},
	{17, "Кофейня №17 (ТЦ ПаркХаус 2)"},
	{18, "Кофейня №18 (ТЦ Порт)"},
	{19, "Кофейня №19 (ТЦ Кольцо)"},
	{20, "Кофейня №20 (ТЦ Республика)"},
	{21, "Кофейня №21 (ТЦ Франт)"},
	{22, "Кофейня №22 (ТЦ XL)"},
	{23, "Кофейня №23 (Джалиля, 19)"},
	{24, "Кофейня №24 (Энергетиков, 3)"},
	{25, "Кофейня №25 (Революционная, 24)"},
	{26, "Кофейня №26 (Пушкина, 16)"},
	{27, "Кофейня №27 (Дубравная, 51Г)"},
	{28, "Кофейня №28 (Декабристов, 85)"},
	{29, "Кофейня №29 (Мой Ритм)"},
	{30, "Кофейня №30 (Тэцевская, 4Д)"},
	{31, "Кофейня №31 (Максимова, 50)"},
	{32, "Кофейня №32 (Яраткан, 1)"},
	{33, "Кофейня №33 (ТЦ Радужный, Садовая 9)"},
	{34, "Кофейня №34 (Зеленодольск, Эссен)"},
	{35, "Кофейня №35 (Н.Челны, Джумба)"},
	{36, "Кофейня №36 (Запасная)"},
}
