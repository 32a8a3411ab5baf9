package model

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kailas-cloud/passpredict/internal/domain/features"
)

// TreeNode is one node of a flattened decision tree. Node 0 is the root.
type TreeNode struct {
	FeatureIdx int     `json:"feature_idx"`
	Threshold  float64 `json:"threshold"`
	LeftChild  int     `json:"left_child"`
	RightChild int     `json:"right_child"`
	ClassLabel int     `json:"class_label"`
	IsLeaf     bool    `json:"is_leaf"`
}

type treeArtifact struct {
	Nodes []TreeNode `json:"nodes"`
}

type forestArtifact struct {
	Trees []treeArtifact `json:"trees"`
}

type tree struct {
	nodes []TreeNode
}

type forest struct {
	trees   []*tree
	classes [2]int
}

func decodeTree(raw []byte, classes [2]int) (classifier, error) {
	var a treeArtifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArtifact, err)
	}
	return newTree(a.Nodes, classes)
}

func decodeForest(raw []byte, classes [2]int) (classifier, error) {
	var a forestArtifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArtifact, err)
	}
	if len(a.Trees) == 0 {
		return nil, fmt.Errorf("%w: forest has no trees", ErrInvalidArtifact)
	}
	f := &forest{classes: classes, trees: make([]*tree, len(a.Trees))}
	for i, ta := range a.Trees {
		t, err := newTree(ta.Nodes, classes)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		f.trees[i] = t
	}
	return f, nil
}

func newTree(nodes []TreeNode, classes [2]int) (*tree, error) {
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: tree has no nodes", ErrInvalidArtifact)
	}
	for i, n := range nodes {
		if n.IsLeaf {
			if n.ClassLabel != classes[0] && n.ClassLabel != classes[1] {
				return nil, fmt.Errorf("%w: leaf %d class %d not in %v", ErrInvalidArtifact, i, n.ClassLabel, classes)
			}
			continue
		}
		if n.FeatureIdx < 0 || n.FeatureIdx >= features.Len {
			return nil, fmt.Errorf("%w: node %d feature index %d out of range", ErrInvalidArtifact, i, n.FeatureIdx)
		}
		if !inRange(n.LeftChild, len(nodes)) || !inRange(n.RightChild, len(nodes)) {
			return nil, fmt.Errorf("%w: node %d child out of range", ErrInvalidArtifact, i)
		}
	}
	return &tree{nodes: nodes}, nil
}

func inRange(idx, n int) bool { return idx > 0 && idx < n }

func (t *tree) classify(x []float64) (int, error) {
	idx := 0
	// Each step visits a node, so a well-formed path is never longer than the tree.
	for range len(t.nodes) {
		node := t.nodes[idx]
		if node.IsLeaf {
			return node.ClassLabel, nil
		}
		if x[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
	}
	return 0, errors.New("decision tree contains a cycle")
}

// classify takes a majority vote; a tie goes to classes[0].
func (f *forest) classify(x []float64) (int, error) {
	votes := 0
	for i, t := range f.trees {
		class, err := t.classify(x)
		if err != nil {
			return 0, fmt.Errorf("tree %d: %w", i, err)
		}
		if class == f.classes[1] {
			votes++
		}
	}
	if 2*votes > len(f.trees) {
		return f.classes[1], nil
	}
	return f.classes[0], nil
}
