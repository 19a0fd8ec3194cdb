// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package query

import "context"

// Stats summarizes record counts and storage size. Plans counts only
// non-pattern plans, so Total is always the sum of the three counts.
type Stats struct {
	Sessions int    `json:"sessions"`
	Plans    int    `json:"plans"`
	Learned  int    `json:"learned"`
	Total    int    `json:"total"`
	DBSize   int64  `json:"db_size"`
	DBPath   string `json:"db_path"`
}

// Stats returns counts per record kind and the backing store's on-disk
// size. An empty store yields all-zero counts, not an error.
func (e *Engine) Stats(ctx context.Context) (*Stats, error) {
	sessions, err := e.store.Sessions(ctx)
	if err != nil {
		return nil, err
	}
	plans, err := e.store.Plans(ctx)
	if err != nil {
		return nil, err
	}
	patterns, err := e.store.Patterns(ctx)
	if err != nil {
		return nil, err
	}
	size, err := e.store.Size()
	if err != nil {
		return nil, err
	}

	return &Stats{
		Sessions: len(sessions),
		Plans:    len(plans),
		Learned:  len(patterns),
		Total:    len(sessions) + len(plans) + len(patterns),
		DBSize:   size,
		DBPath:   e.store.Path(),
	}, nil
}
