// Package model runs the bundled ONNX models: BIO token tagging for
// entity extraction, NLI entailment scoring for zero-shot
// classification, and sentence embedding.
package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// bundleMeta is what config.json tells us about a bundled model.
type bundleMeta struct {
	Labels            []string
	NumLabels         int
	HiddenSize        int
	RequiresTokenType bool
}

// resolveModelPath prefers the quantized model when both are present.
func resolveModelPath(dir string) string {
	for _, name := range []string{"model.int8.onnx", "model.onnx"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// bundleDirLooksValid reports whether a model directory has the two
// assets every bundle needs: an onnx graph and a tokenizer vocab.
func bundleDirLooksValid(dir string) bool {
	if resolveModelPath(dir) == "" {
		return false
	}
	for _, name := range []string{"vocab.txt", filepath.Join("tokenizer", "vocab.txt")} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

func loadBundleMeta(dir string) (bundleMeta, error) {
	meta := bundleMeta{}

	configPath := filepath.Join(dir, "config.json")
	if data, err := os.ReadFile(configPath); err == nil {
		var cfg struct {
			NumLabels     int               `json:"num_labels"`
			ID2Label      map[string]string `json:"id2label"`
			HiddenSize    int               `json:"hidden_size"`
			TypeVocabSize int               `json:"type_vocab_size"`
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return meta, fmt.Errorf("decode config.json: %w", err)
		}
		meta.NumLabels = cfg.NumLabels
		meta.Labels = labelsFromIDMap(cfg.ID2Label)
		meta.HiddenSize = cfg.HiddenSize
		meta.RequiresTokenType = cfg.TypeVocabSize > 0
	}

	// label_map.json, when present, overrides config.json labels.
	labelPath := filepath.Join(dir, "label_map.json")
	if data, err := os.ReadFile(labelPath); err == nil {
		var list []string
		if err := json.Unmarshal(data, &list); err == nil && len(list) > 0 {
			meta.Labels = list
		} else {
			var idMap map[string]string
			if err := json.Unmarshal(data, &idMap); err == nil {
				meta.Labels = labelsFromIDMap(idMap)
			}
		}
	}

	if meta.NumLabels <= 0 {
		meta.NumLabels = len(meta.Labels)
	}
	return meta, nil
}

func labelsFromIDMap(id2label map[string]string) []string {
	if len(id2label) == 0 {
		return nil
	}
	type entry struct {
		id    int
		label string
	}
	entries := make([]entry, 0, len(id2label))
	maxID := -1
	for k, v := range id2label {
		id, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		entries = append(entries, entry{id: id, label: v})
		if id > maxID {
			maxID = id
		}
	}
	if maxID < 0 {
		return nil
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].id < entries[j].id })
	labels := make([]string, maxID+1)
	for _, e := range entries {
		labels[e.id] = e.label
	}
	return labels
}
