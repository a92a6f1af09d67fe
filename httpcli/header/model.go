/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package header

type hdr struct {
	order  []string
	values map[string][]string
}

func (h *hdr) Set(key, val string) Headers {
	key = Canonical(key)

	if _, found := h.values[key]; !found {
		h.order = append(h.order, key)
	}

	h.values[key] = []string{val}

	return h
}

func (h *hdr) Add(key, val string) Headers {
	key = Canonical(key)

	if _, found := h.values[key]; !found {
		h.order = append(h.order, key)
	}

	h.values[key] = append(h.values[key], val)

	return h
}

func (h *hdr) Del(key string) bool {
	key = Canonical(key)

	if _, found := h.values[key]; !found {
		return false
	}

	delete(h.values, key)

	for i, k := range h.order {
		if k == key {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}

	return true
}

func (h *hdr) Get(key string) (string, bool) {
	vals := h.values[Canonical(key)]

	if len(vals) == 0 {
		return "", false
	}

	return vals[0], true
}

func (h *hdr) GetAll(key string) []string {
	return h.values[Canonical(key)]
}

func (h *hdr) Has(key string) bool {
	_, found := h.values[Canonical(key)]
	return found
}

func (h *hdr) Keys() []string {
	res := make([]string, len(h.order))
	copy(res, h.order)
	return res
}

func (h *hdr) Walk(fct func(key string, vals []string) bool) {
	for _, key := range h.order {
		if !fct(key, h.values[key]) {
			return
		}
	}
}

func (h *hdr) Len() int {
	return len(h.values)
}

func (h *hdr) IsEmpty() bool {
	return len(h.values) == 0
}

func (h *hdr) Clone() Headers {
	res := New()

	h.Walk(func(key string, vals []string) bool {
		for _, val := range vals {
			res.Add(key, val)
		}

		return true
	})

	return res
}

func (h *hdr) Equal(other Headers) bool {
	if other == nil || h.Len() != other.Len() {
		return false
	}

	equal := true

	h.Walk(func(key string, vals []string) bool {
		got := other.GetAll(key)

		if len(got) != len(vals) {
			equal = false
			return false
		}

		for i := range vals {
			if vals[i] != got[i] {
				equal = false
				return false
			}
		}

		return true
	})

	return equal
}
