package main

import (
	"fmt"
	"strconv"
	"strings"

	"fstr_backend/internal/models"
	"fstr_backend/internal/services"
	"fstr_backend/internal/services/dto"
	"fstr_backend/internal/validator"
	"fstr_backend/pkg/apperrors"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func newModerateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "moderate <id> <status>",
		Short: "Set the moderation status of a pereval record",
		Long: "Set the moderation status of a pereval record (new, pending, accepted, rejected).\n" +
			"Records leave the editable state once their status is not 'new'.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			req := dto.SetStatusRequest{ID: id, Status: args[1]}
			req.Normalize()
			if err := validator.New().Validate(&req); err != nil {
				return fmt.Errorf("%w (expected status one of %s)", err, statusList())
			}
			status := models.PerevalStatus(req.Status)

			return ctx.withServices(cmd.Context(), false, func(db *gorm.DB, container *services.ServiceContainer) error {
				if err := container.PerevalService.SetStatus(db, id, status); err != nil {
					return commandError(id, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Pereval %d status set to %s\n", id, status)
				return nil
			})
		},
	}
}

// commandError переводит ошибку сервиса в сообщение для терминала
func commandError(id uint, err error) error {
	if apperrors.HasCode(err, apperrors.CodeNotFound) {
		return fmt.Errorf("pereval %d not found", id)
	}
	return err
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 0)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid pereval id %q", raw)
	}
	return uint(id), nil
}

func statusList() string {
	names := make([]string, 0, len(models.PerevalStatuses))
	for _, s := range models.PerevalStatuses {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}
