package ml

import "fmt"

// Stage is the position of a trainer in its run.
type Stage int

const (
	Uninitialized Stage = iota
	DataPrepared
	ModelBuilt
	Training
	Evaluated
	Inferred
)

var stageNames = [...]string{
	Uninitialized: "uninitialized",
	DataPrepared:  "data_prepared",
	ModelBuilt:    "model_built",
	Training:      "training",
	Evaluated:     "evaluated",
	Inferred:      "inferred",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stageNames[s]
}

// StageError reports an operation invoked from a stage that does not
// allow it.
type StageError struct {
	Op    string
	Stage Stage
}

func (e *StageError) Error() string {
	return fmt.Sprintf("ml: %s not allowed in stage %s", e.Op, e.Stage)
}

// machine tracks the stage shared by both trainers.
type machine struct {
	stage Stage
}

// Stage returns the current stage.
func (m *machine) Stage() Stage {
	return m.stage
}

func (m *machine) require(op string, allowed ...Stage) error {
	for _, s := range allowed {
		if m.stage == s {
			return nil
		}
	}
	return &StageError{Op: op, Stage: m.stage}
}

func (m *machine) advance(to Stage) {
	m.stage = to
}

const (
	opPrepareData = "prepare data"
	opBuildModel  = "build model"
	opRunEpoch    = "run epoch"
	opEvaluate    = "evaluate"
	opPredictor   = "predictor"
)

// allowed lists the stages each operation may start from.
var allowed = map[string][]Stage{
	opPrepareData: {Uninitialized},
	opBuildModel:  {DataPrepared},
	opRunEpoch:    {ModelBuilt, Training},
	opEvaluate:    {Training, Evaluated, Inferred},
	opPredictor:   {Training, Evaluated, Inferred},
}

func (m *machine) check(op string) error {
	return m.require(op, allowed[op]...)
}
