// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package main

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tochemey/extreg/extension"
	"github.com/tochemey/extreg/internal/manifest"
	"github.com/tochemey/extreg/registry"
)

func newLoadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "load <manifest.yaml>...",
		Short: "Load manifests into the registry cache",
		Long: "load admits the given manifests into a registry backed by the configured cache, then stops it to save the cache.\n" +
			"Cached contributions whose manifest is unchanged are reused; the others are dropped.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contributions, err := readManifests(cmd.Context(), args)
			if err != nil {
				return err
			}

			storage, err := a.cfg.Storage(cmd.Context())
			if err != nil {
				return err
			}

			// a manifest is identified by its contributor and the ids it declares,
			// so that one contributor may ship several manifests
			stamps := make(map[string]time.Time, len(contributions))
			for _, contribution := range contributions {
				stamps[contributionKey(contribution)] = contribution.Timestamp
			}
			reused := make(map[string]struct{}, len(contributions))
			timestamps := registry.TimestampFreshness(func(contribution *extension.Contribution) (time.Time, bool) {
				stamp, ok := stamps[contributionKey(contribution)]
				return stamp, ok
			})
			fresh := func(contribution *extension.Contribution) bool {
				if !timestamps(contribution) {
					return false
				}
				reused[contributionKey(contribution)] = struct{}{}
				return true
			}

			master := registry.NewToken()
			reg := registry.New(registry.NewStrategy(storage, fresh), master, nil,
				registry.WithLogger(a.logger),
				registry.WithCacheOptions(a.cfg.CacheOptions()...))

			var cached, added, rejected int
			for _, contribution := range contributions {
				if _, ok := reused[contributionKey(contribution)]; ok {
					cached++
					continue
				}
				ok, err := reg.AddContribution(contribution, master)
				if err != nil {
					_ = reg.Stop(master)
					return err
				}
				if !ok {
					rejected++
					continue
				}
				added++
			}

			if err := reg.Stop(master); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "added=%d cached=%d rejected=%d\n", added, cached, rejected)
			return err
		},
	}
}

// readManifests parses the manifests concurrently and keeps the argument order
func readManifests(ctx context.Context, paths []string) ([]*extension.Contribution, error) {
	contributions := make([]*extension.Contribution, len(paths))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			contribution, err := manifest.ReadFile(path)
			if err != nil {
				return err
			}
			contributions[i] = contribution
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return contributions, nil
}

// contributionKey identifies a contribution by its contributor and the unique ids
// of its points and extensions. Anonymous extensions count by their point id.
func contributionKey(contribution *extension.Contribution) string {
	normalized := contribution.Clone()
	normalized.Normalize()

	ids := make([]string, 0, len(normalized.Points)+len(normalized.Extensions))
	for _, point := range normalized.Points {
		if point != nil {
			ids = append(ids, "p:"+point.UniqueID())
		}
	}
	for _, ext := range normalized.Extensions {
		switch {
		case ext == nil:
		case ext.IsAnonymous():
			ids = append(ids, "a:"+ext.PointID)
		default:
			ids = append(ids, "e:"+ext.UniqueID())
		}
	}
	slices.Sort(ids)
	return normalized.Contributor.ID + "|" + strings.Join(ids, ",")
}
