package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/engine"
	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/logger"
	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/render"
)

func newDiagnoseCmd(opts *rootOptions) *cobra.Command {
	var asJSON, raw bool
	var width int

	c := &cobra.Command{
		Use:   "diagnose <image>",
		Short: "诊断一张植物照片",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return fmt.Errorf("无法加载配置文件: %w", err)
			}

			img, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			eng, err := engine.NewEngine(cfg)
			if err != nil {
				return err
			}
			defer eng.Close()

			logger.Log.Infof("开始诊断 %s (%s)", args[0], cfg.Vision.Provider)
			d, err := eng.Diagnose(cmd.Context(), img)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case asJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(d)
			case raw:
				_, err = fmt.Fprintln(out, d.Report.Raw)
				return err
			default:
				_, err = fmt.Fprint(out, render.Terminal(d.Report, width))
				return err
			}
		},
	}

	c.Flags().BoolVar(&asJSON, "json", false, "以 JSON 输出完整诊断结果")
	c.Flags().BoolVar(&raw, "raw", false, "输出模型返回的原始文本")
	c.Flags().IntVar(&width, "width", 80, "卡片宽度，0 表示不限制")
	c.MarkFlagsMutuallyExclusive("json", "raw")
	return c
}
