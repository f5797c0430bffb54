package predictor

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
)

// node is one decision point of a regression tree, stored in a flat array.
// Non-leaf nodes route on features[Feature] <= Threshold; leaves carry the
// additive Value.
type node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
	Leaf      bool    `json:"leaf"`
}

type tree struct {
	Nodes []node `json:"nodes"`
}

// artifact is the on-disk JSON layout of a fitted model.
type artifact struct {
	Features     []string `json:"features"`
	Bias         float64  `json:"bias"`
	LearningRate float64  `json:"learning_rate"`
	Trees        []tree   `json:"trees"`
}

// GBM scores with an additive ensemble of regression trees followed by a
// logistic transform, the decision function of a fitted gradient-boosting
// classifier.
type GBM struct {
	features     []string
	bias         float64
	learningRate float64
	trees        []tree
}

// NewGBM decodes and validates a model artifact.
func NewGBM(r io.Reader) (*GBM, error) {
	var a artifact
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadArtifact, err)
	}

	if len(a.Features) == 0 {
		return nil, fmt.Errorf("%w: no features", ErrBadArtifact)
	}
	if a.LearningRate == 0 {
		a.LearningRate = 1
	}

	for ti, t := range a.Trees {
		if len(t.Nodes) == 0 {
			return nil, fmt.Errorf("%w: tree %d has no nodes", ErrBadArtifact, ti)
		}
		for ni, n := range t.Nodes {
			if n.Leaf {
				continue
			}
			if n.Feature < 0 || n.Feature >= len(a.Features) {
				return nil, fmt.Errorf("%w: tree %d node %d references feature %d", ErrBadArtifact, ti, ni, n.Feature)
			}
			if n.Left <= ni || n.Left >= len(t.Nodes) || n.Right <= ni || n.Right >= len(t.Nodes) {
				return nil, fmt.Errorf("%w: tree %d node %d has invalid children", ErrBadArtifact, ti, ni)
			}
		}
	}

	return &GBM{
		features:     a.Features,
		bias:         a.Bias,
		learningRate: a.LearningRate,
		trees:        a.Trees,
	}, nil
}

// FeatureNames returns the feature names the model was fitted on, in the
// order the trees index them. The names are an opaque contract with the
// upstream feature producers.
func (m *GBM) FeatureNames() []string {
	names := make([]string, len(m.features))
	copy(names, m.features)
	return names
}

// Predict scores the feature map. Every fitted feature must be present;
// a missing one fails with ErrMissingFeature.
func (m *GBM) Predict(features map[string]float64) (float64, error) {
	vec := make([]float64, len(m.features))
	for i, name := range m.features {
		v, ok := features[name]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrMissingFeature, name)
		}
		vec[i] = v
	}

	sum := m.bias
	for _, t := range m.trees {
		sum += m.learningRate * evaluate(t.Nodes, vec)
	}

	// logistic transform keeps the score inside [0,1]
	return 1 / (1 + math.Exp(-sum)), nil
}

func evaluate(nodes []node, vec []float64) float64 {
	i := 0
	for !nodes[i].Leaf {
		if vec[nodes[i].Feature] <= nodes[i].Threshold {
			i = nodes[i].Left
		} else {
			i = nodes[i].Right
		}
	}
	return nodes[i].Value
}
