// Package predictor provides the scoring collaborator: a pre-trained
// gradient-boosted tree classifier loaded once at startup and queried with a
// named feature map. The model is immutable after loading and safe for
// concurrent use.
package predictor

import "errors"

// Predictor maps a named feature vector to a probability in [0,1].
type Predictor interface {
	Predict(features map[string]float64) (float64, error)
	FeatureNames() []string
}

var (
	// ErrMissingFeature marks an input problem: a required feature is absent.
	// Callers should treat it as client error, not a model fault.
	ErrMissingFeature = errors.New("missing feature")

	// ErrBadArtifact marks a malformed or internally inconsistent model
	// artifact.
	ErrBadArtifact = errors.New("bad model artifact")
)
