// Copyright 2026 fairrec Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package group

import (
	"encoding/binary"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Group is a list of users. Order and duplicates carry no meaning: every
// operation works on Members.
type Group []int

// Members returns the distinct users of the group in ascending order.
func (g Group) Members() []int {
	members := lo.Uniq(g)
	sort.Ints(members)
	return members
}

// Key identifies the group regardless of member order and duplicates.
func (g Group) Key() Key {
	members := g.Members()
	buf := make([]byte, 0, 8*len(members))
	for _, member := range members {
		buf = binary.BigEndian.AppendUint64(buf, uint64(member))
	}
	return Key(buf)
}

func (g Group) String() string {
	return g.Key().String()
}

// Key is a comparable group identity usable as a map key.
type Key string

// Members decodes the users of the key in ascending order.
func (k Key) Members() []int {
	members := make([]int, 0, len(k)/8)
	for i := 0; i+8 <= len(k); i += 8 {
		members = append(members, int(binary.BigEndian.Uint64([]byte(k[i:i+8]))))
	}
	return members
}

func (k Key) String() string {
	return "{" + strings.Join(lo.Map(k.Members(), func(member int, _ int) string {
		return strconv.Itoa(member)
	}), ", ") + "}"
}
