package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/render"
	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/report"
)

// newInterpretCmd 解析已有的诊断文本，不调用模型
func newInterpretCmd() *cobra.Command {
	var asJSON bool
	var width int

	c := &cobra.Command{
		Use:   "interpret <file|->",
		Short: "解析一段诊断文本（- 表示从标准输入读取）",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return err
			}

			in := report.Interpret(string(data))
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(in)
			}
			_, err = fmt.Fprint(out, render.Terminal(in, width))
			return err
		},
	}

	c.Flags().BoolVar(&asJSON, "json", false, "以 JSON 输出解析结果")
	c.Flags().IntVar(&width, "width", 80, "卡片宽度，0 表示不限制")
	return c
}
