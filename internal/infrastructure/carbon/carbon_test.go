package carbon

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/greenthread-api/internal/application/ports"
)

var sample = ports.CarbonInput{
	MaterialQuantityKg:      2,
	EnergyUsedKwh:           10,
	TransportDistanceKm:     300,
	ProductWeightKg:         1.5,
	RecycledMaterialPercent: 20,
	PrimaryMaterial:         "bamboo",
	ProductionType:          "Handmade",
}

// writeScript crea un script sh en un directorio temporal.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh no disponible")
	}
	path := filepath.Join(t.TempDir(), "predict.sh")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o755))
	return path
}

func TestLinearEstimator_Formula(t *testing.T) {
	out, err := LinearEstimator{}.Estimate(context.Background(), sample)
	require.NoError(t, err)
	assert.InDelta(t, 9.0, out.CarbonEmission, 1e-9)
	assert.Equal(t, ports.CarbonSourceLinear, out.Source)
}

func TestScriptEstimator_UsaSalidaDelModelo(t *testing.T) {
	script := writeScript(t, "cat > /dev/null\necho '{\"carbon_emission\": 12.75}'\n")
	est := NewScriptEstimator("sh", script, 5*time.Second, nil)

	out, err := est.Estimate(context.Background(), sample)
	require.NoError(t, err)
	assert.InDelta(t, 12.75, out.CarbonEmission, 1e-9)
	assert.Equal(t, ports.CarbonSourceScript, out.Source)
}

func TestScriptEstimator_RecibeEntradaPorStdin(t *testing.T) {
	dir := t.TempDir()
	captured := filepath.Join(dir, "in.json")
	script := writeScript(t, "cat > "+captured+"\necho '{\"carbon_emission\": 1}'\n")
	est := NewScriptEstimator("sh", script, 5*time.Second, nil)

	_, err := est.Estimate(context.Background(), sample)
	require.NoError(t, err)
	raw, err := os.ReadFile(captured)
	require.NoError(t, err)
	assert.JSONEq(t, `{"material_quantity_kg":2,"energy_used_kwh":10,"transport_distance_km":300,
		"product_weight_kg":1.5,"recycled_material_percent":20,"primary_material":"bamboo","production_type":"Handmade"}`, string(raw))
}

func TestScriptEstimator_CaeAFormulaLineal(t *testing.T) {
	cases := map[string]string{
		"error reportado":  "echo '{\"error\": \"Model or Scaler not found\"}'\n",
		"salida inválida":  "echo 'Traceback...'\n",
		"código de salida": "echo boom >&2\nexit 3\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			est := NewScriptEstimator("sh", writeScript(t, body), 5*time.Second, nil)
			out, err := est.Estimate(context.Background(), sample)
			require.NoError(t, err)
			assert.Equal(t, ports.CarbonSourceLinear, out.Source)
			assert.InDelta(t, 9.0, out.CarbonEmission, 1e-9)
		})
	}
}

func TestScriptEstimator_BinarioInexistente(t *testing.T) {
	est := NewScriptEstimator("no-such-python-bin", "predict.py", time.Second, nil)
	out, err := est.Estimate(context.Background(), sample)
	require.NoError(t, err)
	assert.Equal(t, ports.CarbonSourceLinear, out.Source)
}
