package cluster

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// TaskResources are abstract resources a task requires, or a worker provides, e.g. {"GPU": 1}.
// The scheduler only runs a task on a worker which advertises enough of every resource.
type TaskResources map[string]float64

// GPU returns TaskResources requiring n GPUs
func GPU(n float64) TaskResources {
	return TaskResources{"GPU": n}
}

// String renders TaskResources as a comma-separated list of NAME=amount, sorted by name
func (r TaskResources) String() string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%s", name, strconv.FormatFloat(r[name], 'g', -1, 64))
	}
	return strings.Join(parts, ",")
}

// ParseTaskResources parses the format produced by TaskResources.String. Whitespace and
// single quotes around the whole value are tolerated.
func ParseTaskResources(s string) (TaskResources, error) {
	s = strings.Trim(strings.TrimSpace(s), "'")
	res := TaskResources{}
	if len(s) == 0 {
		return res, nil
	}
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' }) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 || len(kv[0]) == 0 {
			return nil, fmt.Errorf("resource %#v must be formatted as NAME=amount", part)
		}
		amount, err := strconv.ParseFloat(kv[1], 64)
		if err != nil || amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
			return nil, fmt.Errorf("resource %s has invalid amount %#v", kv[0], kv[1])
		}
		res[kv[0]] = amount
	}
	return res, nil
}

var quantityPattern = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?)([a-zA-Z]*)$`)

var quantitySuffixes = map[string]float64{
	"":   1,
	"m":  1e-3,
	"k":  1e3,
	"K":  1e3,
	"M":  1e6,
	"G":  1e9,
	"T":  1e12,
	"P":  1e15,
	"Ki": 1 << 10,
	"Mi": 1 << 20,
	"Gi": 1 << 30,
	"Ti": 1 << 40,
	"Pi": 1 << 50,
}

// ParseQuantity converts a resource quantity such as "8G", "512Mi", "1" or "500m" into a number
func ParseQuantity(q string) (float64, error) {
	match := quantityPattern.FindStringSubmatch(strings.TrimSpace(q))
	if match == nil {
		return 0, fmt.Errorf("%#v is not a valid quantity", q)
	}
	multiplier, ok := quantitySuffixes[match[2]]
	if !ok {
		return 0, fmt.Errorf("%#v has an unknown suffix %#v", q, match[2])
	}
	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, err
	}
	return value * multiplier, nil
}
