package control

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"example.com/fuzzy-cruise/base/floats"
	"example.com/fuzzy-cruise/base/metrics"
	"example.com/fuzzy-cruise/core/config"
	"example.com/fuzzy-cruise/core/fuzzy"
)

var (
	inferences = promauto.NewCounter(prometheus.CounterOpts{
		Name: metrics.EngineInferencesN,
		Help: metrics.EngineInferencesH,
	})
	inferenceErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: metrics.EngineInferenceErrorsN,
		Help: metrics.EngineInferenceErrorsH,
	})
	emptyDecisions = promauto.NewCounter(prometheus.CounterOpts{
		Name: metrics.EngineEmptyDecisionsN,
		Help: metrics.EngineEmptyDecisionsH,
	})
	rulesFired = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: metrics.EngineRulesFiredN,
		Help: metrics.EngineRulesFiredH,
	}, []string{"rule"})
	outputGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: metrics.EngineOutputN,
		Help: metrics.EngineOutputH,
	})
)

// Decision is the outcome of one inference.
type Decision struct {
	// Inputs holds the fuzzification of every input variable.
	Inputs map[string]fuzzy.Result
	// Conclusions holds the non-empty results of the rules that fired, in
	// rule order; Fired holds the names of those rules.
	Conclusions []fuzzy.Result
	Fired       []string
	// Value is the defuzzified output, Label the single output set it
	// belongs to, if any.
	Value float64
	Label string
}

// Engine runs Mamdani inference over a validated model. An Engine is safe
// for concurrent use.
type Engine struct {
	log   *zap.Logger
	model *config.Model
	names []string
}

func NewEngine(log *zap.Logger, m *config.Model) *Engine {
	names := make([]string, len(m.Rules))
	for i, r := range m.Rules {
		names[i] = r.Name
		if names[i] == "" {
			names[i] = fmt.Sprintf("#%d", i+1)
		}
	}
	return &Engine{log: log, model: m, names: names}
}

// Inputs returns the names of the input variables in configuration order.
func (e *Engine) Inputs() []string {
	ns := make([]string, len(e.model.Inputs))
	for i, v := range e.model.Inputs {
		ns[i] = v.Name()
	}
	return ns
}

func (e *Engine) Output() *fuzzy.Variable {
	return e.model.Output
}

// Infer fuzzifies the readings, fires the rules, aggregates their
// conclusions onto the output variable and defuzzifies the result. If no
// rule asserts a set with a positive degree, the returned decision carries
// the fuzzified inputs and an error wrapping fuzzy.ErrNoRegion.
func (e *Engine) Infer(readings map[string]float64) (Decision, error) {
	inferences.Inc()

	d := Decision{Inputs: make(map[string]fuzzy.Result, len(e.model.Inputs))}
	for _, v := range e.model.Inputs {
		x, ok := readings[v.Name()]
		if !ok {
			inferenceErrors.Inc()
			return Decision{}, fmt.Errorf("%w: %q", errMissingInput, v.Name())
		}
		if !floats.Finite(x) {
			inferenceErrors.Inc()
			return Decision{}, fmt.Errorf("%w: %q is %v", errInvalidInput, v.Name(), x)
		}
		d.Inputs[v.Name()] = v.Fuzzify(x)
	}

	for i, r := range e.model.Rules {
		c := r.Eval(d.Inputs, e.model.Output)
		if c.Empty() {
			continue
		}
		d.Conclusions = append(d.Conclusions, c)
		d.Fired = append(d.Fired, e.names[i])
		rulesFired.WithLabelValues(e.names[i]).Inc()
	}

	e.log.Debug("rules evaluated",
		zap.Object("inputs", inputsMarshaler{inputs: d.Inputs}),
		zap.Strings("fired", d.Fired),
		zap.Array("conclusions", conclusionsMarshaler{conclusions: d.Conclusions}),
	)

	agg := e.model.Output.Aggregate(d.Conclusions)
	v, err := agg.COG(e.model.Step)
	if err != nil {
		if errors.Is(err, fuzzy.ErrNoRegion) {
			emptyDecisions.Inc()
		} else {
			inferenceErrors.Inc()
		}
		return d, err
	}
	d.Value = v
	d.Label = e.model.Output.FinalSelection(v)
	outputGauge.Set(v)

	e.log.Debug("decision",
		zap.Float64("value", d.Value),
		zap.String("label", d.Label),
	)
	return d, nil
}
