package docker

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/navy/internal/core/domain"
)

// ConfigHash computes a hash of everything that ends up in a service's
// container configuration. Containers whose hash is unchanged are reused.
func ConfigHash(env string, spec *domain.ServiceSpec) string {
	hasher := xxhash.New()

	writeField(hasher, env)
	writeField(hasher, spec.Name)
	writeField(hasher, spec.ImageRef())
	writeSection(hasher)

	for _, arg := range spec.Command {
		writeField(hasher, arg)
	}
	writeSection(hasher)

	hashMap(hasher, spec.Environment)
	hashMap(hasher, spec.Labels)

	for _, internal := range spec.InternalPorts() {
		writeField(hasher, strconv.Itoa(internal)+":"+strconv.Itoa(spec.Ports[internal]))
	}
	writeSection(hasher)

	mounts := slices.Clone(spec.Mounts)
	slices.SortFunc(mounts, func(a, b domain.Mount) int {
		return strings.Compare(a.Target, b.Target)
	})
	for _, m := range mounts {
		writeField(hasher, fmt.Sprintf("%s:%s:%t", m.Source, m.Target, m.ReadOnly))
	}
	writeSection(hasher)

	return fmt.Sprintf("%016x", hasher.Sum64())
}

// hashMap hashes a map in a deterministic order.
func hashMap(hasher *xxhash.Digest, m map[string]string) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		_, _ = hasher.WriteString(k)
		_, _ = hasher.Write([]byte{'='})
		_, _ = hasher.WriteString(m[k])
		_, _ = hasher.Write([]byte{0})
	}
	writeSection(hasher)
}

func writeField(hasher *xxhash.Digest, s string) {
	_, _ = hasher.WriteString(s)
	_, _ = hasher.Write([]byte{0}) // Separator
}

func writeSection(hasher *xxhash.Digest) {
	_, _ = hasher.Write([]byte{1})
}
