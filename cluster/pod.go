package cluster

import (
	"fmt"
	"strconv"
)

const (
	// DefaultImage is the container image used when PodOptions.Image is unset
	DefaultImage = "daskdev/dask:latest"
	// MemoryResourceName is the resource name for memory requests and limits
	MemoryResourceName = "memory"
	// CPUResourceName is the resource name for CPU requests and limits
	CPUResourceName = "cpu"
	// GPUResourceName is the resource name for GPU requests and limits
	GPUResourceName = "nvidia.com/gpu"
	// WorkerCommand launches a regular worker
	WorkerCommand = "dask-worker"
	// GPUWorkerCommand launches a CUDA-aware worker
	GPUWorkerCommand = "dask-cuda-worker"
	// SchedulerCommand launches the scheduler
	SchedulerCommand = "dask-scheduler"
)

// EnvVar is an environment variable assignment for a container
type EnvVar struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// Resources are the resource requests and limits of a container, as quantity strings (e.g. "8G", "500m")
type Resources struct {
	Limits   map[string]string `yaml:"limits,omitempty"`
	Requests map[string]string `yaml:"requests,omitempty"`
}

// PodSpec is the template for a single worker or scheduler pod
type PodSpec struct {
	Image        string            `yaml:"image"`
	Args         []string          `yaml:"args,omitempty"`
	Env          []EnvVar          `yaml:"env,omitempty"`
	Resources    Resources         `yaml:"resources"`
	NodeSelector map[string]string `yaml:"nodeSelector,omitempty"`
	Labels       map[string]string `yaml:"labels,omitempty"`
}

// PodOptions are options for MakePodSpec
type PodOptions struct {
	Image            string            // container image. Defaults to DefaultImage.
	MemoryLimit      string            // e.g. "8G". Unset means no limit.
	MemoryRequest    string            // e.g. "8G". Unset means no request.
	CPULimit         string            // e.g. "1" or "500m". Unset means no limit.
	CPURequest       string            // e.g. "1". Unset means no request.
	ThreadsPerWorker int               // threads for each worker process. Defaults to 1.
	Env              map[string]string // extra environment variables
	Labels           map[string]string // extra pod labels
	ExtraArgs        []string          // appended to the worker command line
}

func ensureDefaultPodOptionsValues(opts *PodOptions) {
	if len(opts.Image) == 0 {
		opts.Image = DefaultImage
	}
	if opts.ThreadsPerWorker <= 0 {
		opts.ThreadsPerWorker = 1
	}
}

// MakePodSpec builds a worker PodSpec from PodOptions
func MakePodSpec(opts *PodOptions) *PodSpec {
	if opts == nil {
		opts = &PodOptions{}
	}
	ensureDefaultPodOptionsValues(opts)
	args := []string{WorkerCommand, "--nthreads", strconv.Itoa(opts.ThreadsPerWorker)}
	if len(opts.MemoryLimit) > 0 {
		args = append(args, "--memory-limit", opts.MemoryLimit)
	}
	args = append(args, "--death-timeout", "60")
	args = append(args, opts.ExtraArgs...)
	return makePod(opts, args)
}

// MakeSchedulerPodSpec builds a scheduler PodSpec from PodOptions
func MakeSchedulerPodSpec(opts *PodOptions) *PodSpec {
	if opts == nil {
		opts = &PodOptions{}
	}
	ensureDefaultPodOptionsValues(opts)
	return makePod(opts, append([]string{SchedulerCommand}, opts.ExtraArgs...))
}

func makePod(opts *PodOptions, args []string) *PodSpec {
	pod := &PodSpec{
		Image: opts.Image,
		Args:  args,
		Resources: Resources{
			Limits:   map[string]string{},
			Requests: map[string]string{},
		},
	}
	setIfPresent(pod.Resources.Limits, MemoryResourceName, opts.MemoryLimit)
	setIfPresent(pod.Resources.Requests, MemoryResourceName, opts.MemoryRequest)
	setIfPresent(pod.Resources.Limits, CPUResourceName, opts.CPULimit)
	setIfPresent(pod.Resources.Requests, CPUResourceName, opts.CPURequest)
	for _, name := range sortedKeys(opts.Env) {
		pod.SetEnv(name, opts.Env[name])
	}
	if len(opts.Labels) > 0 {
		pod.Labels = cloneMap(opts.Labels)
	}
	return pod
}

func setIfPresent(m map[string]string, key string, value string) {
	if len(value) > 0 {
		m[key] = value
	}
}

// Clone makes a deep copy of a PodSpec
func (p *PodSpec) Clone() *PodSpec {
	clone := &PodSpec{
		Image: p.Image,
		Args:  append([]string(nil), p.Args...),
		Env:   append([]EnvVar(nil), p.Env...),
		Resources: Resources{
			Limits:   cloneMap(p.Resources.Limits),
			Requests: cloneMap(p.Resources.Requests),
		},
		NodeSelector: cloneMap(p.NodeSelector),
		Labels:       cloneMap(p.Labels),
	}
	return clone
}

// SetEnv sets an environment variable, replacing any existing assignment of the same name
func (p *PodSpec) SetEnv(name string, value string) {
	for i := range p.Env {
		if p.Env[i].Name == name {
			p.Env[i].Value = value
			return
		}
	}
	p.Env = append(p.Env, EnvVar{Name: name, Value: value})
}

// GetEnv returns the value of an environment variable, if it is set
func (p *PodSpec) GetEnv(name string) (string, bool) {
	for _, env := range p.Env {
		if env.Name == name {
			return env.Value, true
		}
	}
	return "", false
}

// SelectNodes constrains this pod to nodes carrying a label
func (p *PodSpec) SelectNodes(key string, value string) {
	if p.NodeSelector == nil {
		p.NodeSelector = map[string]string{}
	}
	p.NodeSelector[key] = value
}

// SetResource sets both the request and the limit for a resource
func (p *PodSpec) SetResource(name string, quantity string) {
	if p.Resources.Limits == nil {
		p.Resources.Limits = map[string]string{}
	}
	if p.Resources.Requests == nil {
		p.Resources.Requests = map[string]string{}
	}
	p.Resources.Limits[name] = quantity
	p.Resources.Requests[name] = quantity
}

// RequestGPU requests n GPUs for this pod, switches the worker command to the CUDA-aware
// worker advertising n GPUs to the scheduler, and makes all devices visible to the container
func (p *PodSpec) RequestGPU(n int) error {
	if n <= 0 {
		return fmt.Errorf("GPU count must be greater than 0, was %d", n)
	}
	if len(p.Args) == 0 || (p.Args[0] != WorkerCommand && p.Args[0] != GPUWorkerCommand) {
		return fmt.Errorf("GPUs can only be requested for worker pods")
	}
	p.SetResource(GPUResourceName, strconv.Itoa(n))
	p.Args[0] = GPUWorkerCommand
	p.SetWorkerResources(GPU(float64(n)))
	p.SetEnv("NVIDIA_VISIBLE_DEVICES", "ALL")
	return nil
}

// SetWorkerResources advertises abstract resources (e.g. GPU=1) to the scheduler via
// the worker's --resources flag, replacing any previous value
func (p *PodSpec) SetWorkerResources(res TaskResources) {
	for i := 0; i < len(p.Args)-1; i++ {
		if p.Args[i] == "--resources" {
			p.Args[i+1] = res.String()
			return
		}
	}
	p.Args = append(p.Args, "--resources", res.String())
}
