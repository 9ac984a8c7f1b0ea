package main

import (
	"fmt"
	"strconv"
	"time"

	"fstr_backend/internal/models"
	"fstr_backend/internal/services"
	"fstr_backend/internal/services/dto"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Display a pereval record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return ctx.withServices(cmd.Context(), false, func(db *gorm.DB, container *services.ServiceContainer) error {
				pereval, err := container.PerevalService.GetPereval(db, id)
				if err != nil {
					return commandError(id, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderPereval(pereval))
				return nil
			})
		},
	}
}

func newStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count pereval records by moderation status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(cmd.Context(), false, func(db *gorm.DB, container *services.ServiceContainer) error {
				counts, err := container.PerevalService.CountByStatus(db)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderStats(counts))
				return nil
			})
		},
	}
}

func renderPereval(p *dto.PerevalResponse) string {
	rows := [][]string{
		{"ID", strconv.FormatUint(uint64(p.ID), 10)},
		{"Status", p.Status},
		{"Title", p.Title},
		{"Beauty title", p.BeautyTitle},
		{"Other titles", p.OtherTitles},
		{"Connect", p.Connect},
		{"Submitted", p.AddTime.Format(time.RFC3339)},
		{"Submitter", fmt.Sprintf("%s %s %s <%s>", p.User.Fam, p.User.Name, p.User.Otc, p.User.Email)},
		{"Phone", p.User.Phone},
		{"Coords", fmt.Sprintf("%g, %g, %d m", p.Coords.Latitude, p.Coords.Longitude, p.Coords.Height)},
		{"Levels (W/S/A/Sp)", fmt.Sprintf("%s / %s / %s / %s", p.LevelWinter, p.LevelSummer, p.LevelAutumn, p.LevelSpring)},
	}
	out := renderTable([]string{"Field", "Value"}, rows, nil)

	if len(p.Images) == 0 {
		return out + "\nNo images"
	}
	images := make([][]string, 0, len(p.Images))
	for i, img := range p.Images {
		images = append(images, []string{strconv.Itoa(i + 1), img.Title, img.ImageURL})
	}
	return out + "\n" + renderTable([]string{"#", "Title", "URL"}, images, []columnAlignment{alignRight, alignLeft, alignLeft})
}

func renderStats(counts map[models.PerevalStatus]int64) string {
	rows := make([][]string, 0, len(models.PerevalStatuses))
	var total int64
	for _, s := range models.PerevalStatuses {
		rows = append(rows, []string{string(s), strconv.FormatInt(counts[s], 10)})
		total += counts[s]
	}
	rows = append(rows, []string{"total", strconv.FormatInt(total, 10)})
	return renderTable([]string{"Status", "Count"}, rows, []columnAlignment{alignLeft, alignRight})
}
