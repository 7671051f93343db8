package emotion

// Label is an emotion name from one of the fixed label sets
type Label string

const (
	LabelAngry    Label = "Angry"
	LabelDisgust  Label = "Disgust"
	LabelFear     Label = "Fear"
	LabelHappy    Label = "Happy"
	LabelSad      Label = "Sad"
	LabelSurprise Label = "Surprise"
	LabelNeutral  Label = "Neutral"
	LabelCalm     Label = "Calm"
)

// FrameLabels are the labels a face frame can be classified as
var FrameLabels = []Label{
	LabelAngry,
	LabelDisgust,
	LabelFear,
	LabelHappy,
	LabelSad,
	LabelSurprise,
	LabelNeutral,
}

// AudioLabels are the labels an audio clip can be classified as.
// LabelNeutral is also accepted as the fallback.
var AudioLabels = []Label{
	LabelCalm,
	LabelHappy,
	LabelSad,
	LabelAngry,
}

// normalizeLabel returns l if it is in set or is the neutral label,
// otherwise LabelNeutral
func normalizeLabel(l Label, set []Label) (Label, bool) {
	if l == LabelNeutral {
		return l, true
	}
	for _, known := range set {
		if l == known {
			return l, true
		}
	}
	return LabelNeutral, false
}
