package providers

import (
	"activitybot/internal/structures"
	"errors"
	"fmt"
	"github.com/gookit/validate"
	"regexp"
	"time"
)

var (
	snowflakeRe = regexp.MustCompile(`^\d+$`)
	clockRe     = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

func init() {
	validate.AddValidator("snowflake", func(val any) bool {
		s, ok := val.(string)
		return ok && snowflakeRe.MatchString(s)
	})
	validate.AddValidator("clock", func(val any) bool {
		s, ok := val.(string)
		return ok && clockRe.MatchString(s)
	})
}

type CnfValidatorInterface interface {
	Validate() error
}

type CnfValidator struct {
	conf *structures.Config
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return v.Errors
	}

	if cv.conf.Report.ChannelID != "" && cv.conf.Discord.Token == "" {
		return errors.New("discord.token is required when report.channelId is set")
	}
	if cv.conf.Report.Timezone != "" {
		if _, err := time.LoadLocation(cv.conf.Report.Timezone); err != nil {
			return fmt.Errorf("invalid report.timezone: %w", err)
		}
	}
	return nil
}

func NewCnfValidator(conf *structures.Config) CnfValidatorInterface {
	return &CnfValidator{conf: conf}
}
