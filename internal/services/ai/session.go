package ai

import (
	"fmt"
	"runtime"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

var (
	ortInitOnce sync.Once
	ortInitErr  error
)

// initRuntime initializes the onnxruntime environment exactly once per
// process, no matter how many sessions are created.
func initRuntime(runtimePath string) error {
	ortInitOnce.Do(func() {
		if runtimePath == "" {
			runtimePath = defaultRuntimePath()
		}
		ort.SetSharedLibraryPath(runtimePath)
		ortInitErr = ort.InitializeEnvironment()
	})
	return ortInitErr
}

func defaultRuntimePath() string {
	switch runtime.GOOS {
	case "windows":
		return "./third_party/onnxruntime.dll"
	case "darwin":
		if runtime.GOARCH == "arm64" {
			return "./third_party/onnxruntime_arm64.dylib"
		}
		return "./third_party/onnxruntime.dylib"
	default:
		if runtime.GOARCH == "arm64" {
			return "./third_party/onnxruntime_arm64.so"
		}
		return "./third_party/onnxruntime.so"
	}
}

// modelSession wraps an ONNX session with its reused input/output tensors.
// Input is [1,3,size,size] CHW, output follows the YOLO detection layout
// [1, 4+classes, anchors].
type modelSession struct {
	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	output  *ort.Tensor[float32]
}

// anchorCount is the number of candidate boxes the model emits for a
// square input: one per cell at strides 8, 16 and 32 (8400 for 640).
func anchorCount(inputSize int) int {
	return (inputSize/8)*(inputSize/8) + (inputSize/16)*(inputSize/16) + (inputSize/32)*(inputSize/32)
}

func newModelSession(modelPath string, inputSize, numClasses int, runtimePath string) (*modelSession, error) {
	if err := initRuntime(runtimePath); err != nil {
		return nil, fmt.Errorf("failed to initialize ONNX environment: %w", err)
	}

	inputShape := ort.NewShape(1, 3, int64(inputSize), int64(inputSize))
	inputTensor, err := ort.NewEmptyTensor[float32](inputShape)
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}

	outputShape := ort.NewShape(1, int64(4+numClasses), int64(anchorCount(inputSize)))
	outputTensor, err := ort.NewEmptyTensor[float32](outputShape)
	if err != nil {
		inputTensor.Destroy()
		return nil, fmt.Errorf("failed to create output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(modelPath,
		[]string{"images"}, []string{"output0"},
		[]ort.ArbitraryTensor{inputTensor}, []ort.ArbitraryTensor{outputTensor},
		nil)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	return &modelSession{
		session: session,
		input:   inputTensor,
		output:  outputTensor,
	}, nil
}

func (m *modelSession) close() {
	if m.input != nil {
		m.input.Destroy()
	}
	if m.output != nil {
		m.output.Destroy()
	}
	if m.session != nil {
		m.session.Destroy()
	}
}
