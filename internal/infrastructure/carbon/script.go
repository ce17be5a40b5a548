package carbon

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strings"
	"time"

	"github.com/jhoicas/greenthread-api/internal/application/ports"
	"github.com/jhoicas/greenthread-api/pkg/logger"
)

var _ ports.CarbonEstimator = (*ScriptEstimator)(nil)

// ScriptEstimator ejecuta el modelo entrenado como proceso externo:
// JSON por stdin, {"carbon_emission": x} o {"error": "..."} por stdout.
// Cualquier fallo del proceso cae a la fórmula lineal.
type ScriptEstimator struct {
	bin      string
	script   string
	timeout  time.Duration
	fallback ports.CarbonEstimator
	log      *logger.Logger
}

// NewScriptEstimator construye el estimador. bin suele ser "python3".
func NewScriptEstimator(bin, script string, timeout time.Duration, log *logger.Logger) *ScriptEstimator {
	if log == nil {
		log = logger.Nop()
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &ScriptEstimator{
		bin:      bin,
		script:   script,
		timeout:  timeout,
		fallback: LinearEstimator{},
		log:      log.Component("carbon"),
	}
}

type scriptOutput struct {
	CarbonEmission *float64 `json:"carbon_emission"`
	Error          string   `json:"error"`
}

// Estimate corre el script; si falla, registra el motivo y devuelve la estimación lineal.
func (e *ScriptEstimator) Estimate(ctx context.Context, in ports.CarbonInput) (*ports.CarbonEstimate, error) {
	value, err := e.run(ctx, in)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		e.log.Warn().Err(err).Str("script", e.script).Msg("modelo de carbono no disponible, usando fórmula lineal")
		return e.fallback.Estimate(ctx, in)
	}
	return &ports.CarbonEstimate{CarbonEmission: value, Source: ports.CarbonSourceScript}, nil
}

func (e *ScriptEstimator) run(ctx context.Context, in ports.CarbonInput) (float64, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return 0, fmt.Errorf("serializar entrada: %w", err)
	}
	runCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, e.bin, e.script)
	cmd.Stdin = bytes.NewReader(payload)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return 0, fmt.Errorf("script: %w: %s", err, lastLine(msg))
		}
		return 0, fmt.Errorf("script: %w", err)
	}

	var out scriptOutput
	if err := json.Unmarshal(bytes.TrimSpace(stdout.Bytes()), &out); err != nil {
		return 0, fmt.Errorf("salida no es JSON: %w", err)
	}
	if out.Error != "" {
		return 0, errors.New(out.Error)
	}
	if out.CarbonEmission == nil || math.IsNaN(*out.CarbonEmission) || math.IsInf(*out.CarbonEmission, 0) {
		return 0, errors.New("salida sin carbon_emission")
	}
	return *out.CarbonEmission, nil
}

func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
