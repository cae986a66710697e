package metrics

const (
	EngineInferencesH      = "The total number of inferences performed"
	EngineInferencesN      = "fuzzycruise_engine_inferences"
	EngineInferenceErrorsH = "The total number of inferences that failed"
	EngineInferenceErrorsN = "fuzzycruise_engine_inference_errors"
	EngineEmptyDecisionsH  = "The total number of inferences in which no rule fired"
	EngineEmptyDecisionsN  = "fuzzycruise_engine_empty_decisions"
	EngineRulesFiredH      = "The total number of times each rule fired"
	EngineRulesFiredN      = "fuzzycruise_engine_rules_fired"
	EngineOutputH          = "The crisp output value of the most recent inference"
	EngineOutputN          = "fuzzycruise_engine_output"

	SensorSamplesH = "The total number of sensor samples read"
	SensorSamplesN = "fuzzycruise_sensor_samples"
)
