package cluster

import (
	"fmt"
	"os"
	"regexp"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v2"
)

// DefaultNamespace is used when a ClusterSpec does not name a namespace
const DefaultNamespace = "default"

var (
	namespacePattern = regexp.MustCompile(`^[a-z0-9]([-a-z0-9]*[a-z0-9])?$`)
	envNamePattern   = regexp.MustCompile(`^[^=\s]+$`)
)

// AdaptOptions configure adaptive scaling of workers by the orchestrator
type AdaptOptions struct {
	Minimum int `yaml:"minimum"`
	Maximum int `yaml:"maximum"` // 0 means unbounded
}

// ClusterSpec describes a whole cluster: its worker and scheduler pod templates,
// the namespace they run in, and optional adaptive scaling bounds
type ClusterSpec struct {
	Namespace string        `yaml:"namespace"`
	Worker    *PodSpec      `yaml:"worker"`
	Scheduler *PodSpec      `yaml:"scheduler,omitempty"`
	Adapt     *AdaptOptions `yaml:"adapt,omitempty"`
}

// NewClusterSpec creates a ClusterSpec with the given worker template and a default scheduler
func NewClusterSpec(namespace string, worker *PodSpec) *ClusterSpec {
	if len(namespace) == 0 {
		namespace = DefaultNamespace
	}
	schedulerOpts := &PodOptions{}
	if worker != nil {
		schedulerOpts.Image = worker.Image
	}
	return &ClusterSpec{
		Namespace: namespace,
		Worker:    worker,
		Scheduler: MakeSchedulerPodSpec(schedulerOpts),
	}
}

// Validate reports every problem with a ClusterSpec, or nil if there are none
func (c *ClusterSpec) Validate() error {
	var merr *multierror.Error
	if !namespacePattern.MatchString(c.Namespace) || len(c.Namespace) > 63 {
		merr = multierror.Append(merr, fmt.Errorf("namespace %#v is not a valid DNS label", c.Namespace))
	}
	if c.Worker == nil {
		merr = multierror.Append(merr, fmt.Errorf("a worker template is required"))
	} else if err := c.Worker.Validate(); err != nil {
		merr = multierror.Append(merr, prefixErrors("worker", err)...)
	}
	if c.Scheduler != nil {
		if err := c.Scheduler.Validate(); err != nil {
			merr = multierror.Append(merr, prefixErrors("scheduler", err)...)
		}
	}
	if c.Adapt != nil {
		if c.Adapt.Minimum < 0 {
			merr = multierror.Append(merr, fmt.Errorf("adapt minimum must not be negative, was %d", c.Adapt.Minimum))
		}
		if c.Adapt.Maximum < 0 || (c.Adapt.Maximum > 0 && c.Adapt.Maximum < c.Adapt.Minimum) {
			merr = multierror.Append(merr, fmt.Errorf("adapt maximum %d must be 0 or at least the minimum %d", c.Adapt.Maximum, c.Adapt.Minimum))
		}
	}
	return merr.ErrorOrNil()
}

// Validate reports every problem with a PodSpec, or nil if there are none
func (p *PodSpec) Validate() error {
	var merr *multierror.Error
	if len(p.Image) == 0 {
		merr = multierror.Append(merr, fmt.Errorf("image is required"))
	}
	if len(p.Args) == 0 {
		merr = multierror.Append(merr, fmt.Errorf("args must include a command"))
	}
	for _, env := range p.Env {
		if !envNamePattern.MatchString(env.Name) {
			merr = multierror.Append(merr, fmt.Errorf("environment variable name %#v is invalid", env.Name))
		}
	}
	quantities := map[string]map[string]float64{"limit": {}, "request": {}}
	for kind, values := range map[string]map[string]string{"limit": p.Resources.Limits, "request": p.Resources.Requests} {
		for _, name := range sortedKeys(values) {
			q, err := ParseQuantity(values[name])
			if err != nil {
				merr = multierror.Append(merr, fmt.Errorf("%s %s: %w", name, kind, err))
				continue
			}
			quantities[kind][name] = q
		}
	}
	for _, name := range sortedKeys(p.Resources.Requests) {
		request, hasRequest := quantities["request"][name]
		limit, hasLimit := quantities["limit"][name]
		if hasRequest && hasLimit && limit < request {
			merr = multierror.Append(merr, fmt.Errorf("%s limit %s is less than its request %s", name, p.Resources.Limits[name], p.Resources.Requests[name]))
		}
	}
	return merr.ErrorOrNil()
}

func prefixErrors(prefix string, err error) []error {
	merr, ok := err.(*multierror.Error)
	if !ok {
		return []error{fmt.Errorf("%s: %w", prefix, err)}
	}
	errs := make([]error, len(merr.Errors))
	for i, e := range merr.Errors {
		errs[i] = fmt.Errorf("%s: %w", prefix, e)
	}
	return errs
}

// YAML renders a ClusterSpec as YAML
func (c *ClusterSpec) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// ParseClusterSpec parses and validates a YAML ClusterSpec. Unknown fields are rejected.
func ParseClusterSpec(data []byte) (*ClusterSpec, error) {
	spec := &ClusterSpec{}
	if err := yaml.UnmarshalStrict(data, spec); err != nil {
		return nil, err
	}
	if len(spec.Namespace) == 0 {
		spec.Namespace = DefaultNamespace
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

// LoadClusterSpec reads, parses and validates a YAML ClusterSpec from a file
func LoadClusterSpec(path string) (*ClusterSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	spec, err := ParseClusterSpec(data)
	if err != nil {
		return nil, fmt.Errorf("invalid cluster spec %s: %w", path, err)
	}
	return spec, nil
}
