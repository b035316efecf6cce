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
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tochemey/extreg/registry"
)

func newListCmd(a *app) *cobra.Command {
	var namespace string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the cached extension points and their extensions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			storage, err := a.cfg.Storage(cmd.Context())
			if err != nil {
				return err
			}

			master := registry.NewToken()
			reg := registry.New(registry.NewStrategy(storage, nil), master, nil,
				registry.WithLogger(a.logger),
				registry.WithCacheReadOnly(),
				registry.WithCacheOptions(a.cfg.CacheOptions()...))
			defer func() {
				_ = reg.Stop(master)
			}()

			points := reg.ExtensionPoints()
			if namespace != "" {
				points = reg.ExtensionPointsIn(namespace)
			}

			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "POINT\tCONTRIBUTOR\tEXTENSIONS")
			for _, point := range points {
				var ids []string
				for _, ext := range reg.ExtensionsFor(point.UniqueID()) {
					id := ext.UniqueID()
					if ext.IsAnonymous() {
						id = "<anonymous:" + ext.Contributor + ">"
					}
					ids = append(ids, id)
				}
				fmt.Fprintf(writer, "%s\t%s\t%s\n", point.UniqueID(), point.Contributor, strings.Join(ids, ","))
			}
			return writer.Flush()
		},
	}
	cmd.Flags().StringVarP(&namespace, "namespace", "n", "", "only list the extension points of this namespace")
	return cmd
}
