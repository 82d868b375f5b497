// Package cluster describes the workers and scheduler of a Dask-style compute cluster
// as plain, declarative configuration: container image, resource requests and limits,
// environment, node selectors and worker arguments. It contains no orchestration logic;
// a ClusterSpec is handed wholesale to an Orchestrator, which owns provisioning.
package cluster
