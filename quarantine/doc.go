// Package quarantine stores partitions which failed to parse, so that they can be inspected
// and fixed without rerunning a whole job. Each record keeps the exact original bytes
// (compressed on disk with a Codec, lz4 by default) together with the error which caused it to be set aside.
package quarantine
