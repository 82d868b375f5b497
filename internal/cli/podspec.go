package cli

import (
	"github.com/go-sif/triage/cluster"
	"github.com/spf13/cobra"
)

type podSpecOptions struct {
	from         string
	namespace    string
	image        string
	gpus         int
	memory       string
	cpu          string
	threads      int
	nodeSelector map[string]string
	env          map[string]string
	minWorkers   int
	maxWorkers   int
}

func newPodSpecCommand(root *rootOptions) *cobra.Command {
	opts := &podSpecOptions{}
	cmd := &cobra.Command{
		Use:   "podspec",
		Short: "Render a validated cluster spec as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := opts.clusterSpec()
			if err != nil {
				return err
			}
			orch := &cluster.WriterOrchestrator{W: cmd.OutOrStdout()}
			if err := orch.Submit(cmd.Context(), spec); err != nil {
				return err
			}
			root.logger.Debug("Rendered cluster spec", "namespace", spec.Namespace, "image", spec.Worker.Image)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.from, "from", "", "load and validate a YAML cluster spec instead of building one from flags")
	flags.StringVar(&opts.namespace, "namespace", cluster.DefaultNamespace, "namespace for the cluster")
	flags.StringVar(&opts.image, "image", cluster.DefaultImage, "worker and scheduler image")
	flags.IntVar(&opts.gpus, "gpus", 0, "GPUs requested by each worker")
	flags.StringVar(&opts.memory, "memory", "8G", "memory request and limit of each worker")
	flags.StringVar(&opts.cpu, "cpu", "1", "CPU request and limit of each worker")
	flags.IntVar(&opts.threads, "threads", 1, "threads per worker")
	flags.StringToStringVar(&opts.nodeSelector, "node-selector", nil, "node labels workers must run on, as key=value")
	flags.StringToStringVar(&opts.env, "env", nil, "extra worker environment variables, as NAME=value")
	flags.IntVar(&opts.minWorkers, "min-workers", 0, "minimum workers when scaling adaptively")
	flags.IntVar(&opts.maxWorkers, "max-workers", 0, "maximum workers when scaling adaptively (0 disables adaptive scaling)")
	return cmd
}

func (opts *podSpecOptions) clusterSpec() (*cluster.ClusterSpec, error) {
	if len(opts.from) > 0 {
		return cluster.LoadClusterSpec(opts.from)
	}
	worker := cluster.MakePodSpec(&cluster.PodOptions{
		Image:            opts.image,
		MemoryLimit:      opts.memory,
		MemoryRequest:    opts.memory,
		CPULimit:         opts.cpu,
		CPURequest:       opts.cpu,
		ThreadsPerWorker: opts.threads,
		Env:              opts.env,
	})
	if opts.gpus > 0 {
		if err := worker.RequestGPU(opts.gpus); err != nil {
			return nil, err
		}
	}
	for key, value := range opts.nodeSelector {
		worker.SelectNodes(key, value)
	}
	spec := cluster.NewClusterSpec(opts.namespace, worker)
	if opts.maxWorkers > 0 {
		spec.Adapt = &cluster.AdaptOptions{Minimum: opts.minWorkers, Maximum: opts.maxWorkers}
	}
	return spec, nil
}
