package cluster

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMakePodSpecDefaults(t *testing.T) {
	pod := MakePodSpec(&PodOptions{
		MemoryLimit:   "8G",
		MemoryRequest: "8G",
		CPULimit:      "1",
		CPURequest:    "1",
	})
	require.Equal(t, DefaultImage, pod.Image)
	require.Equal(t, []string{"dask-worker", "--nthreads", "1", "--memory-limit", "8G", "--death-timeout", "60"}, pod.Args)
	require.Equal(t, map[string]string{"memory": "8G", "cpu": "1"}, pod.Resources.Limits)
	require.Equal(t, map[string]string{"memory": "8G", "cpu": "1"}, pod.Resources.Requests)
	require.Nil(t, pod.Validate())
}

func TestMakePodSpecWithoutMemoryLimit(t *testing.T) {
	pod := MakePodSpec(&PodOptions{ThreadsPerWorker: 4, ExtraArgs: []string{"--name", "w0"}})
	require.Equal(t, []string{"dask-worker", "--nthreads", "4", "--death-timeout", "60", "--name", "w0"}, pod.Args)
	require.Len(t, pod.Resources.Limits, 0)
}

func TestRequestGPU(t *testing.T) {
	pod := MakePodSpec(&PodOptions{Image: "holdenk/dask:latest", MemoryLimit: "8G", MemoryRequest: "8G", CPULimit: "1", CPURequest: "1"})
	require.Nil(t, pod.RequestGPU(1))
	require.Equal(t, "1", pod.Resources.Limits[GPUResourceName])
	require.Equal(t, "1", pod.Resources.Requests[GPUResourceName])
	require.Equal(t, GPUWorkerCommand, pod.Args[0])
	require.Equal(t, []string{"--resources", "GPU=1"}, pod.Args[len(pod.Args)-2:])
	val, ok := pod.GetEnv("NVIDIA_VISIBLE_DEVICES")
	require.True(t, ok)
	require.Equal(t, "ALL", val)

	// requesting again replaces rather than duplicating
	require.Nil(t, pod.RequestGPU(2))
	require.Equal(t, "2", pod.Resources.Limits[GPUResourceName])
	require.Equal(t, []string{"--resources", "GPU=2"}, pod.Args[len(pod.Args)-2:])
	require.Len(t, pod.Env, 1)

	require.NotNil(t, pod.RequestGPU(0))
	require.NotNil(t, MakeSchedulerPodSpec(nil).RequestGPU(1))
}

func TestSelectNodesAndClone(t *testing.T) {
	pod := MakePodSpec(nil)
	pod.SelectNodes("node.kubernetes.io/gpu", "gpu")
	clone := pod.Clone()
	clone.SelectNodes("zone", "a")
	clone.Args[0] = "changed"
	clone.SetEnv("A", "1")
	require.Equal(t, map[string]string{"node.kubernetes.io/gpu": "gpu"}, pod.NodeSelector)
	require.Equal(t, WorkerCommand, pod.Args[0])
	require.Len(t, pod.Env, 0)
	require.Len(t, clone.NodeSelector, 2)
}

func TestPodOptionsEnvIsOrdered(t *testing.T) {
	pod := MakePodSpec(&PodOptions{Env: map[string]string{"B": "2", "A": "1"}, Labels: map[string]string{"app": "triage"}})
	require.Equal(t, []EnvVar{{Name: "A", Value: "1"}, {Name: "B", Value: "2"}}, pod.Env)
	require.Equal(t, "triage", pod.Labels["app"])
}

func TestPodValidate(t *testing.T) {
	pod := &PodSpec{
		Env: []EnvVar{{Name: "BAD=NAME", Value: "x"}},
		Resources: Resources{
			Limits:   map[string]string{"memory": "4G", "cpu": "lots"},
			Requests: map[string]string{"memory": "8G"},
		},
	}
	err := pod.Validate()
	require.NotNil(t, err)
	msg := err.Error()
	require.Contains(t, msg, "image is required")
	require.Contains(t, msg, "args must include a command")
	require.Contains(t, msg, "BAD=NAME")
	require.Contains(t, msg, "cpu limit")
	require.Contains(t, msg, "memory limit 4G is less than its request 8G")
}
