/*
* GoCsInfo, a directory of TLS cipher suites, RFCs and the cryptographic algorithms they are built from.
*
* Copyright (c) Siemens AG, 2016-2024.
*
* This work is licensed under the terms of the MIT license. For a copy, see the LICENSE file in the top-level
* directory or visit <https://opensource.org/licenses/MIT>.
*
 */

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/noneymous/GoSslyze"
	"github.com/spf13/cobra"

	"github.com/siemens/GoCsInfo/assessment"
	"github.com/siemens/GoCsInfo/utils"
)

func newAssessCmd(root *rootOptions) *cobra.Command {
	var target string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "assess <sslyze json file>",
		Short: "Rate the cipher suites a TLS endpoint accepted during an SSLyze scan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, errRead := utils.ReadInputFile(args[0])
			if errRead != nil {
				return errRead
			}
			var hostResult gosslyze.HostResult
			if errJson := json.Unmarshal(data, &hostResult); errJson != nil {
				return fmt.Errorf("could not parse SSLyze result: %w", errJson)
			}
			if target == "" {
				target = args[0]
			}
			return withEnv(cmd, root, func(ctx context.Context, e *env) error {
				assessor, errNew := assessment.NewAssessor(e.logger, e.catalog, target)
				if errNew != nil {
					return errNew
				}
				result := assessor.Run(ctx, &hostResult, timeout)
				if result.Exception {
					return fmt.Errorf("assessment failed: %s", result.Status)
				}
				return writeJson(cmd.OutOrStdout(), result)
			})
		},
	}
	cmd.Flags().StringVar(&target, "target", "", "Name of the scanned endpoint (default: file name)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Abort the assessment after this duration (0 to disable)")
	return cmd
}
