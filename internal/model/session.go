package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ort "github.com/yalue/onnxruntime_go"
)

const (
	defaultIntraThreads = 1
	defaultInterThreads = 1
)

// RuntimeSettings tunes the onnxruntime thread pools.
type RuntimeSettings struct {
	IntraThreads int
	InterThreads int
}

// initRuntime points onnxruntime at its shared library and initializes
// the environment once.
func initRuntime(bundleDir string) error {
	libPath := resolveSharedLibraryPath(bundleDir)
	if libPath == "" {
		return fmt.Errorf("onnxruntime shared library not found; set ONNXRUNTIME_SHARED_LIBRARY_PATH or install the runtime")
	}
	ort.SetSharedLibraryPath(libPath)
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return fmt.Errorf("initialize onnxruntime: %w", err)
		}
	}
	return nil
}

func resolveSharedLibraryPath(bundleDir string) string {
	if env := strings.TrimSpace(os.Getenv("ONNXRUNTIME_SHARED_LIBRARY_PATH")); env != "" {
		return env
	}
	candidates := []string{
		filepath.Join(bundleDir, "lib", "libonnxruntime.so"),
		filepath.Join(bundleDir, "lib", "libonnxruntime.dylib"),
		filepath.Join(bundleDir, "libonnxruntime.so"),
		filepath.Join(bundleDir, "..", "lib", "libonnxruntime.so"),
		filepath.Join(bundleDir, "..", "lib", "libonnxruntime.dylib"),
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

// session owns one onnxruntime session and its pre-allocated tensors.
type session struct {
	session       *ort.AdvancedSession
	inputIDs      *ort.Tensor[int64]
	attentionMask *ort.Tensor[int64]
	tokenTypeIDs  *ort.Tensor[int64]
	output        *ort.Tensor[float32]
}

// sessionPool hands out sessions over a buffered channel so concurrent
// requests never share tensors.
type sessionPool struct {
	sessions chan *session
}

func newSessionPool(modelPath string, seqLen, poolSize int, outName string, outShape ort.Shape, rt RuntimeSettings, includeTokenType bool) (*sessionPool, error) {
	if poolSize <= 0 {
		poolSize = 1
	}
	sessions := make(chan *session, poolSize)
	for i := 0; i < poolSize; i++ {
		s, err := newSession(modelPath, seqLen, outName, outShape, rt, includeTokenType)
		if err != nil {
			return nil, fmt.Errorf("create onnx session %d/%d: %w", i+1, poolSize, err)
		}
		sessions <- s
	}
	return &sessionPool{sessions: sessions}, nil
}

func (p *sessionPool) acquire() *session  { return <-p.sessions }
func (p *sessionPool) release(s *session) { p.sessions <- s }

func newSession(modelPath string, seqLen int, outName string, outShape ort.Shape, rt RuntimeSettings, includeTokenType bool) (*session, error) {
	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("create session options: %w", err)
	}
	if err := opts.SetGraphOptimizationLevel(ort.GraphOptimizationLevelEnableAll); err != nil {
		opts.Destroy()
		return nil, fmt.Errorf("set graph optimization: %w", err)
	}
	intraThr := rt.IntraThreads
	if intraThr <= 0 {
		intraThr = defaultIntraThreads
	}
	interThr := rt.InterThreads
	if interThr <= 0 {
		interThr = defaultInterThreads
	}
	if err := opts.SetIntraOpNumThreads(intraThr); err != nil {
		opts.Destroy()
		return nil, fmt.Errorf("set intra threads: %w", err)
	}
	if err := opts.SetInterOpNumThreads(interThr); err != nil {
		opts.Destroy()
		return nil, fmt.Errorf("set inter threads: %w", err)
	}

	inputShape := ort.NewShape(1, int64(seqLen))
	inputIDs, err := ort.NewEmptyTensor[int64](inputShape)
	if err != nil {
		opts.Destroy()
		return nil, fmt.Errorf("allocate input_ids tensor: %w", err)
	}
	attnMask, err := ort.NewEmptyTensor[int64](inputShape)
	if err != nil {
		opts.Destroy()
		return nil, fmt.Errorf("allocate attention_mask tensor: %w", err)
	}
	var tokenType *ort.Tensor[int64]
	if includeTokenType {
		tokenType, err = ort.NewEmptyTensor[int64](inputShape)
		if err != nil {
			opts.Destroy()
			return nil, fmt.Errorf("allocate token_type_ids tensor: %w", err)
		}
	}

	output, err := ort.NewEmptyTensor[float32](outShape)
	if err != nil {
		opts.Destroy()
		return nil, fmt.Errorf("allocate output tensor: %w", err)
	}

	inputNames := []string{"input_ids", "attention_mask"}
	inputValues := []ort.Value{inputIDs, attnMask}
	if tokenType != nil {
		inputNames = append(inputNames, "token_type_ids")
		inputValues = append(inputValues, tokenType)
	}
	if outName == "" {
		outName = "logits"
	}
	sess, err := ort.NewAdvancedSession(
		modelPath,
		inputNames,
		[]string{outName},
		inputValues,
		[]ort.Value{output},
		opts,
	)
	if err != nil {
		opts.Destroy()
		return nil, fmt.Errorf("create onnx session: %w", err)
	}
	opts.Destroy()

	return &session{
		session:       sess,
		inputIDs:      inputIDs,
		attentionMask: attnMask,
		tokenTypeIDs:  tokenType,
		output:        output,
	}, nil
}

// run copies the encoded inputs into the session tensors and executes
// the model.
func (s *session) run(ids, attn, types []int64) error {
	copy(s.inputIDs.GetData(), ids)
	copy(s.attentionMask.GetData(), attn)
	if s.tokenTypeIDs != nil {
		data := s.tokenTypeIDs.GetData()
		for i := range data {
			data[i] = 0
		}
		if types != nil {
			copy(data, types)
		}
	}
	if err := s.session.Run(); err != nil {
		return fmt.Errorf("onnx run: %w", err)
	}
	return nil
}
