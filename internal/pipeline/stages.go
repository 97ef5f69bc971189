package pipeline

// Stage is one named step of the interview pipeline. The declared order is
// the pipeline order: board columns render left to right in this sequence,
// and "next stage" means the next index.
type Stage string

const (
	StageInitialContact     Stage = "Initial Contact"
	StageSalesInterview     Stage = "Sales Interview"
	StagePositioning        Stage = "Positioning"
	StageTechnicalTest      Stage = "Technical Test"
	StageTechnicalInterview Stage = "Technical Interview"
	StageManagerInterview   Stage = "Manager Interview"
	StageValidation         Stage = "Validation"
)

// Stages is the canonical pipeline order. The pipeline is strictly linear:
// there is no transition graph, only this sequence.
var Stages = []Stage{
	StageInitialContact,
	StageSalesInterview,
	StagePositioning,
	StageTechnicalTest,
	StageTechnicalInterview,
	StageManagerInterview,
	StageValidation,
}

var stageIndex = func() map[Stage]int {
	m := make(map[Stage]int, len(Stages))
	for i, s := range Stages {
		m[s] = i
	}
	return m
}()

// StageIndex returns the position of s in the pipeline, or -1 if s is not a
// known stage.
func StageIndex(s Stage) int {
	if i, ok := stageIndex[s]; ok {
		return i
	}
	return -1
}

func IsValidStage(s Stage) bool {
	return StageIndex(s) >= 0
}

// NextStage returns the stage following s, or "" when s is the last stage or
// unknown.
func NextStage(s Stage) Stage {
	i := StageIndex(s)
	if i < 0 || i+1 >= len(Stages) {
		return ""
	}
	return Stages[i+1]
}
