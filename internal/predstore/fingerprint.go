// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

package predstore

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/tomtom215/cfpredict/internal/recommend"
)

// Fingerprint hashes every rating in store together with signature, which
// should describe the algorithm settings (short-circuit, undefined policy).
// Two engines share persisted predictions only when their fingerprints match.
func Fingerprint(store *recommend.Store, signature string) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(signature)

	var buf [8]byte
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = d.Write(buf[:])
	}

	store.Each(recommend.AxisUser, func(p *recommend.Profile) bool {
		put(uint64(p.ID()))
		put(uint64(p.Len()))
		p.Each(func(movieID int, value float64) bool {
			put(uint64(movieID))
			put(math.Float64bits(value))
			return true
		})
		return true
	})

	return d.Sum64()
}
