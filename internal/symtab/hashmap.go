// This file is part of ampl2023.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package symtab

import "github.com/josharian/intern"

// loadFactorThreshold is the ratio of stored entries to buckets past which
// a hashMap rehashes into a larger table (spec.md §4.3).
const loadFactorThreshold = 0.75

// entry is one node of a bucket's chain.
type entry struct {
	key  string
	val  *Props
	next *entry
}

// hashMap is a chained hash table over owned string keys with expected
// O(1) insert/lookup, rehashing to the next prime above double capacity
// once the load factor threshold is crossed. A naive character-sum hash is
// explicitly disallowed by spec.md §4.3 because its collision rate
// dominates parser latency on realistic inputs; hashString below uses a
// cyclic left-rotate XOR mix instead.
type hashMap struct {
	buckets []*entry
	count   int
}

func newHashMap() *hashMap {
	return &hashMap{buckets: make([]*entry, 17)}
}

// hashString computes a non-trivial mix of s: a running cyclic left
// rotation XORed with each byte, which scatters common prefixes (unlike a
// plain character sum) across buckets.
func hashString(s string) uint64 {
	var h uint64 = 1469598103934665603 // arbitrary odd seed
	for i := 0; i < len(s); i++ {
		h = rotl64(h, 5) ^ uint64(s[i])
	}
	return h
}

func rotl64(x uint64, k uint) uint64 {
	return (x << k) | (x >> (64 - k))
}

func (m *hashMap) bucketIndex(key string) int {
	return int(hashString(key) % uint64(len(m.buckets)))
}

// get looks up key, returning its value and whether it was found.
func (m *hashMap) get(key string) (*Props, bool) {
	for e := m.buckets[m.bucketIndex(key)]; e != nil; e = e.next {
		if e.key == key {
			return e.val, true
		}
	}
	return nil, false
}

// insert adds key->val if key is not already present, returning false on a
// duplicate. The key is interned so repeated identifiers across scopes
// share one backing string.
func (m *hashMap) insert(key string, val *Props) bool {
	idx := m.bucketIndex(key)
	for e := m.buckets[idx]; e != nil; e = e.next {
		if e.key == key {
			return false
		}
	}
	m.buckets[idx] = &entry{key: intern.String(key), val: val, next: m.buckets[idx]}
	m.count++
	if float64(m.count)/float64(len(m.buckets)) > loadFactorThreshold {
		m.rehash(nextPrimeAbove(2 * len(m.buckets)))
	}
	return true
}

func (m *hashMap) rehash(newSize int) {
	old := m.buckets
	m.buckets = make([]*entry, newSize)
	for _, head := range old {
		for e := head; e != nil; {
			next := e.next
			idx := m.bucketIndex(e.key)
			e.next = m.buckets[idx]
			m.buckets[idx] = e
			e = next
		}
	}
}

// each calls fn for every key/value pair currently stored, in a
// deterministic bucket-then-chain order. No code in this module calls it;
// printing for diagnostics is not a requirement of this front end.
func (m *hashMap) each(fn func(key string, val *Props)) {
	for _, head := range m.buckets {
		for e := head; e != nil; e = e.next {
			fn(e.key, e.val)
		}
	}
}

func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	for i := 2; i*i <= n; i++ {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// nextPrimeAbove returns the smallest prime strictly greater than n.
func nextPrimeAbove(n int) int {
	for c := n + 1; ; c++ {
		if isPrime(c) {
			return c
		}
	}
}
