package cluster

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func gpuClusterSpec(t *testing.T) *ClusterSpec {
	worker := MakePodSpec(&PodOptions{Image: "holdenk/dask:latest", MemoryLimit: "8G", MemoryRequest: "8G", CPULimit: "1", CPURequest: "1"})
	require.Nil(t, worker.RequestGPU(1))
	worker.SelectNodes("node.kubernetes.io/gpu", "gpu")
	spec := NewClusterSpec("dask", worker)
	spec.Scheduler = MakeSchedulerPodSpec(&PodOptions{Image: "holdenk/dask:latest", MemoryLimit: "4G", MemoryRequest: "4G", CPULimit: "1", CPURequest: "1"})
	spec.Adapt = &AdaptOptions{Minimum: 0, Maximum: 10}
	return spec
}

func TestClusterSpecYAMLRoundTrip(t *testing.T) {
	spec := gpuClusterSpec(t)
	require.Nil(t, spec.Validate())
	out, err := spec.YAML()
	require.Nil(t, err)
	require.Contains(t, string(out), "nvidia.com/gpu")

	parsed, err := ParseClusterSpec(out)
	require.Nil(t, err)
	require.Equal(t, spec, parsed)
}

func TestLoadClusterSpec(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cluster.yaml")
	require.Nil(t, os.WriteFile(path, []byte(`
worker:
  image: holdenk/dask:latest
  args: [dask-cuda-worker, --resources, GPU=1]
  env:
  - name: NVIDIA_VISIBLE_DEVICES
    value: ALL
  resources:
    limits: {memory: 8G, cpu: "1", nvidia.com/gpu: "1"}
    requests: {memory: 8G, cpu: "1", nvidia.com/gpu: "1"}
  nodeSelector:
    node.kubernetes.io/gpu: gpu
`), 0644))
	spec, err := LoadClusterSpec(path)
	require.Nil(t, err)
	require.Equal(t, DefaultNamespace, spec.Namespace)
	require.Equal(t, "1", spec.Worker.Resources.Limits[GPUResourceName])
	require.Nil(t, spec.Scheduler)

	require.Nil(t, os.WriteFile(path, []byte("worker:\n  image: x\n  unknown: field\n"), 0644))
	_, err = LoadClusterSpec(path)
	require.NotNil(t, err)

	_, err = LoadClusterSpec(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NotNil(t, err)
}

func TestClusterSpecValidate(t *testing.T) {
	spec := &ClusterSpec{
		Namespace: "Not_Valid",
		Scheduler: &PodSpec{Args: []string{SchedulerCommand}},
		Adapt:     &AdaptOptions{Minimum: 5, Maximum: 2},
	}
	err := spec.Validate()
	require.NotNil(t, err)
	msg := err.Error()
	require.Contains(t, msg, "namespace")
	require.Contains(t, msg, "a worker template is required")
	require.Contains(t, msg, "scheduler: image is required")
	require.Contains(t, msg, "adapt maximum 2")
}

func TestWriterOrchestrator(t *testing.T) {
	var buf bytes.Buffer
	orch := &WriterOrchestrator{W: &buf}
	require.Nil(t, orch.Submit(context.Background(), gpuClusterSpec(t)))
	require.Contains(t, buf.String(), "dask-cuda-worker")

	buf.Reset()
	require.NotNil(t, orch.Submit(context.Background(), &ClusterSpec{Namespace: "dask"}))
	require.Equal(t, 0, buf.Len())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Equal(t, context.Canceled, orch.Submit(ctx, gpuClusterSpec(t)))
}

func TestNewClusterSpecWithoutWorker(t *testing.T) {
	spec := NewClusterSpec("", nil)
	require.Equal(t, DefaultNamespace, spec.Namespace)
	require.Equal(t, DefaultImage, spec.Scheduler.Image)
	err := spec.Validate()
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "a worker template is required")
}
