// Package sales agrega el historial de órdenes de un vendedor en el reporte de ventas
// del panel: totales, ventas y CO2 por mes (seis meses hacia atrás) y ventas por categoría.
//
// Los meses se identifican solo por su nombre corto en inglés ("Jan", "Feb", ...), sin año:
// una orden de hace doce meses cae en el mismo bucket que una del mes actual.
// Las órdenes más antiguas que los seis meses sembrados no aparecen en ningún bucket,
// pero sí cuentan en TotalEarnings, ProductsSold y SalesByCategory.
package sales

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/greenthread-api/internal/domain/entity"
)

// TrailingMonths cantidad de buckets mensuales (mes actual incluido).
const TrailingMonths = 6

// UncategorizedLabel categoría usada cuando el producto no tiene una.
const UncategorizedLabel = "Uncategorized"

// ProductFacts lo que el reporte necesita saber de cada producto del vendedor.
type ProductFacts struct {
	Category        string
	CarbonFootprint decimal.Decimal // kg CO2e por unidad; cero si no se estimó
}

// MonthAmount valor acumulado de un mes.
type MonthAmount struct {
	Month  string
	Amount decimal.Decimal
}

// CategoryAmount ingresos acumulados de una categoría.
type CategoryAmount struct {
	Name  string
	Value decimal.Decimal
}

// PlatformPrice precio de referencia por plataforma.
type PlatformPrice struct {
	Platform string
	Price    decimal.Decimal
}

// Insights resultado de Aggregate.
type Insights struct {
	TotalEarnings    decimal.Decimal
	ProductsSold     int
	MonthlySales     []MonthAmount // del más antiguo al más reciente
	CarbonEmissions  []MonthAmount // del más antiguo al más reciente
	SalesByCategory  []CategoryAmount
	MarketComparison []PlatformPrice
}

// MonthKey nombre corto en inglés del mes de t.
func MonthKey(t time.Time) string {
	return t.Month().String()[:3]
}

// SeedMonths devuelve los nombres de los últimos TrailingMonths meses, del más antiguo al actual.
// Se calcula desde el día 1 para no saltar meses cortos (p. ej. now = 31 de marzo).
func SeedMonths(now time.Time) []string {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	out := make([]string, TrailingMonths)
	for i := 0; i < TrailingMonths; i++ {
		out[TrailingMonths-1-i] = MonthKey(first.AddDate(0, -i, 0))
	}
	return out
}

// FactsFromProducts construye el lookup id → {categoría, huella} de los productos del vendedor.
func FactsFromProducts(products []*entity.Product) map[string]ProductFacts {
	facts := make(map[string]ProductFacts, len(products))
	for _, p := range products {
		f := ProductFacts{Category: p.Category}
		if p.CarbonFootprint.Valid {
			f.CarbonFootprint = p.CarbonFootprint.Decimal
		}
		facts[p.ID] = f
	}
	return facts
}

// MarketComparison precios de referencia fijos; no se derivan de datos.
func MarketComparison() []PlatformPrice {
	return []PlatformPrice{
		{Platform: "Amazon", Price: decimal.NewFromInt(60)},
		{Platform: "Etsy", Price: decimal.NewFromInt(55)},
		{Platform: "GreenThread", Price: decimal.NewFromInt(45)},
	}
}

// Aggregate recorre una sola vez las líneas de las órdenes y acumula las de productos presentes en facts.
// Las líneas sin producto (eliminado) se ignoran.
func Aggregate(now time.Time, facts map[string]ProductFacts, orders []*entity.Order) Insights {
	months := SeedMonths(now)
	salesByMonth := make(map[string]decimal.Decimal, len(months))
	co2ByMonth := make(map[string]decimal.Decimal, len(months))
	for _, m := range months {
		salesByMonth[m] = decimal.Zero
		co2ByMonth[m] = decimal.Zero
	}

	total := decimal.Zero
	sold := 0
	byCategory := make(map[string]decimal.Decimal)

	for _, o := range orders {
		if o == nil {
			continue
		}
		month := MonthKey(o.CreatedAt.In(now.Location()))
		for _, it := range o.Items {
			if it.ProductID == nil {
				continue
			}
			f, ok := facts[*it.ProductID]
			if !ok {
				continue
			}
			qty := decimal.NewFromInt(int64(it.Quantity))
			revenue := it.Price.Mul(qty)

			sold += it.Quantity
			total = total.Add(revenue)
			if cur, ok := salesByMonth[month]; ok {
				salesByMonth[month] = cur.Add(revenue)
				co2ByMonth[month] = co2ByMonth[month].Add(f.CarbonFootprint.Mul(qty))
			}

			cat := f.Category
			if cat == "" {
				cat = UncategorizedLabel
			}
			byCategory[cat] = byCategory[cat].Add(revenue)
		}
	}

	out := Insights{
		TotalEarnings:    total,
		ProductsSold:     sold,
		MonthlySales:     make([]MonthAmount, 0, len(months)),
		CarbonEmissions:  make([]MonthAmount, 0, len(months)),
		SalesByCategory:  make([]CategoryAmount, 0, len(byCategory)),
		MarketComparison: MarketComparison(),
	}
	for _, m := range months {
		out.MonthlySales = append(out.MonthlySales, MonthAmount{Month: m, Amount: salesByMonth[m]})
		out.CarbonEmissions = append(out.CarbonEmissions, MonthAmount{Month: m, Amount: co2ByMonth[m]})
	}
	for name, v := range byCategory {
		out.SalesByCategory = append(out.SalesByCategory, CategoryAmount{Name: name, Value: v})
	}
	// Orden estable para que la respuesta no dependa del orden de iteración del map.
	sort.Slice(out.SalesByCategory, func(i, j int) bool {
		a, b := out.SalesByCategory[i], out.SalesByCategory[j]
		if c := a.Value.Cmp(b.Value); c != 0 {
			return c > 0
		}
		return a.Name < b.Name
	})
	return out
}
