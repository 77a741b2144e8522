package domain

// ClassLabel is one of the fixed labels the model distinguishes.
type ClassLabel string

const (
	ClassNone    ClassLabel = "none"
	ClassProduct ClassLabel = "product"
	ClassSeries  ClassLabel = "series"
)

// classLabels maps model output indexes to labels. Index order matches the
// fine-tuned head of the model.
var classLabels = []ClassLabel{ClassNone, ClassProduct, ClassSeries}

// NumClasses is the size of the model's label set.
const NumClasses = 3

// LabelForIndex returns the label for a model class index. Unknown indexes
// fall back to ClassNone, mirroring the serving contract.
func LabelForIndex(idx int) ClassLabel {
	if idx < 0 || idx >= len(classLabels) {
		return ClassNone
	}
	return classLabels[idx]
}

// Prediction is one classification outcome: the winning label and the
// model's confidence in it, in [0,1].
type Prediction struct {
	Class      ClassLabel `json:"class"`
	Confidence float64    `json:"confidence"`
}
