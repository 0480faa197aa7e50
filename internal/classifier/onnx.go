package classifier

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/Skufu/maternalrisk/internal/observation"
)

// ortEnv manages global ONNX Runtime initialization (process-wide singleton).
var ortEnv struct {
	once sync.Once
	err  error
}

// initORT initializes the ONNX Runtime environment. Only the first call has
// any effect.
func initORT(libPath string) error {
	ortEnv.once.Do(func() {
		ort.SetSharedLibraryPath(libPath)
		ortEnv.err = ort.InitializeEnvironment()
	})
	return ortEnv.err
}

// labelOutputNames are the names converters such as skl2onnx give the
// predicted-class output, in order of preference.
var labelOutputNames = []string{"output_label", "label", "labels"}

// ONNX runs a tabular classifier exported to ONNX. The graph must take one
// float tensor of shape [N, 6] and emit an integer class label tensor.
type ONNX struct {
	session    *ort.DynamicAdvancedSession
	inputName  string
	outputName string
	outputType ort.TensorElementDataType
	path       string
}

// NewONNX loads the model at modelPath. libPath is the ONNX Runtime shared
// library; when empty, libonnxruntime.so next to the model is used.
func NewONNX(modelPath, libPath string) (*ONNX, error) {
	if libPath == "" {
		libPath = filepath.Join(filepath.Dir(modelPath), "libonnxruntime.so")
	}
	if err := initORT(libPath); err != nil {
		return nil, fmt.Errorf("onnx: failed to initialize runtime: %w", err)
	}

	inputs, outputs, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to read model info: %w", err)
	}

	inputName, err := pickInput(inputs)
	if err != nil {
		return nil, err
	}
	label, err := pickLabelOutput(outputs)
	if err != nil {
		return nil, err
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to create session options: %w", err)
	}
	defer opts.Destroy()
	opts.SetIntraOpNumThreads(1)
	opts.SetInterOpNumThreads(1)

	session, err := ort.NewDynamicAdvancedSession(modelPath, []string{inputName}, []string{label.Name}, opts)
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to create session: %w", err)
	}

	return &ONNX{
		session:    session,
		inputName:  inputName,
		outputName: label.Name,
		outputType: label.DataType,
		path:       modelPath,
	}, nil
}

// pickInput checks the model has one float input accepting six features.
func pickInput(inputs []ort.InputOutputInfo) (string, error) {
	if len(inputs) != 1 {
		return "", fmt.Errorf("onnx: expected 1 input, got %d", len(inputs))
	}
	in := inputs[0]
	if in.DataType != ort.TensorElementDataTypeFloat {
		return "", fmt.Errorf("onnx: input %q must be float32, got %v", in.Name, in.DataType)
	}
	dims := in.Dimensions
	if len(dims) != 2 {
		return "", fmt.Errorf("onnx: input %q must be 2D, got %v", in.Name, dims)
	}
	if w := dims[1]; w > 0 && w != int64(len(observation.FeatureNames)) {
		return "", fmt.Errorf("onnx: input %q expects %d features, schema has %d",
			in.Name, w, len(observation.FeatureNames))
	}
	return in.Name, nil
}

// pickLabelOutput finds the predicted-class tensor among the model outputs.
func pickLabelOutput(outputs []ort.InputOutputInfo) (ort.InputOutputInfo, error) {
	var tensors []ort.InputOutputInfo
	for _, o := range outputs {
		if o.OrtValueType == ort.ONNXTypeTensor {
			tensors = append(tensors, o)
		}
	}
	if len(tensors) == 0 {
		return ort.InputOutputInfo{}, fmt.Errorf("onnx: model has no tensor outputs")
	}

	label := tensors[0]
	for _, o := range tensors {
		if slices.Contains(labelOutputNames, o.Name) {
			label = o
			break
		}
	}

	switch label.DataType {
	case ort.TensorElementDataTypeInt64, ort.TensorElementDataTypeInt32:
		return label, nil
	case ort.TensorElementDataTypeString:
		return ort.InputOutputInfo{}, fmt.Errorf(
			"onnx: output %q holds string labels, which the runtime binding cannot read; export the model with integer class labels or serve it with the remote backend",
			label.Name)
	default:
		return ort.InputOutputInfo{}, fmt.Errorf("onnx: output %q has unsupported type %v", label.Name, label.DataType)
	}
}

// Name identifies the model file.
func (m *ONNX) Name() string { return "onnx:" + filepath.Base(m.path) }

// Predict runs one inference call. Tensors are allocated per call, so
// concurrent calls share nothing but the session.
func (m *ONNX) Predict(ctx context.Context, v observation.FeatureVector) (Output, error) {
	if err := checkWidth(v); err != nil {
		return Output{}, err
	}
	if err := ctx.Err(); err != nil {
		return Output{}, err
	}

	in, err := ort.NewTensor(ort.NewShape(1, int64(v.Len())), v.Float32())
	if err != nil {
		return Output{}, fmt.Errorf("onnx: failed to create input tensor: %w", err)
	}
	defer in.Destroy()

	switch m.outputType {
	case ort.TensorElementDataTypeInt32:
		code, err := runLabel[int32](m.session, in)
		return IntCode(int64(code)), err
	default:
		code, err := runLabel[int64](m.session, in)
		return IntCode(code), err
	}
}

func runLabel[T int32 | int64](session *ort.DynamicAdvancedSession, in ort.Value) (T, error) {
	out, err := ort.NewEmptyTensor[T](ort.NewShape(1))
	if err != nil {
		return 0, fmt.Errorf("onnx: failed to create output tensor: %w", err)
	}
	defer out.Destroy()

	if err := session.Run([]ort.Value{in}, []ort.Value{out}); err != nil {
		return 0, fmt.Errorf("onnx: inference failed: %w", err)
	}

	data := out.GetData()
	if len(data) != 1 {
		return 0, fmt.Errorf("onnx: expected 1 label, got %d", len(data))
	}
	return data[0], nil
}

// Close releases the ONNX session.
func (m *ONNX) Close() error {
	return m.session.Destroy()
}
