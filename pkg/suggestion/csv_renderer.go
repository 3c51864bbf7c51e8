package suggestion

import (
	"bytes"
	"encoding/csv"

	log "github.com/sirupsen/logrus"
)

// PlanRenderer renders a plan as a downloadable shopping list.
type PlanRenderer interface {
	RenderPlan(plan Plan) (string, error)
}

type CsvPlanRendererImpl struct {
}

func NewCsvPlanRenderer() *CsvPlanRendererImpl {
	return &CsvPlanRendererImpl{}
}

// RenderPlan writes one row per selected item followed by the totals.
func (t *CsvPlanRendererImpl) RenderPlan(plan Plan) (string, error) {
	data := make([][]string, 0, len(plan.Selection.Items)+5)
	data = append(data, []string{"Name", "Store", "Price", "Protein per 100g", "Value"})
	for _, ranked := range plan.Selection.Items {
		protein := ""
		if ranked.Item.ProteinPer100g.Valid {
			protein = ranked.Item.ProteinPer100g.Decimal.StringFixed(2)
		}
		data = append(data, []string{
			ranked.Item.Name,
			ranked.Item.Store,
			ranked.Item.Price.StringFixed(2),
			protein,
			ranked.Value.StringFixed(2),
		})
	}

	stats := plan.Stats
	data = append(data,
		[]string{"Total spent", "", stats.TotalSpent.StringFixed(2), stats.TotalProtein.StringFixed(2), ""},
		[]string{"Remaining", "", stats.RemainingBudget.StringFixed(2), "", ""},
		[]string{"Protein per currency unit", "", "", "", stats.ProteinPerCurrencyUnit.StringFixed(2)},
	)

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}
