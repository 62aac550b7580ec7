package job

import "github.com/spendsync/backend/internal/domain/entity"

// DailyAlias names the daily trigger in routes and commands.
const DailyAlias = "daily"

var aliases = map[string]entity.JobName{
	"recurring":      entity.JobRecurring,
	"alerts":         entity.JobBudgetAlerts,
	"reset-reminder": entity.JobResetReminder,
	"upcoming-bills": entity.JobUpcomingBills,
}

// ResolveName maps a short alias such as "alerts" to its job. Unknown names
// are returned unchanged so RunJobUseCase can reject them.
func ResolveName(name string) entity.JobName {
	if jobName, ok := aliases[name]; ok {
		return jobName
	}
	return entity.JobName(name)
}
