package constants

const (
	AppName            = "studypilot"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/studypilot/studypilot.db"
	Version            = "v0.1.0"

	// ConnectionEnvVar holds a PostgreSQL connection string (credentials allowed)
	ConnectionEnvVar = "STUDYPILOT_DB_CONNECTION"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "studypilot-"
	BackupFileSuffix = ".db"

	// Storage keys. Every key maps to one JSON document.
	KeySubjects             = "subjects"
	KeyPriorityResults      = "priority_results"
	KeyWeeklyPlans          = "weekly_plans"
	KeyExecutionLogs        = "execution_logs"
	KeyHistoricalPriorities = "historical_priorities"
	KeyRiskAssessments      = "risk_assessments"
	KeyRiskHistory          = "risk_history"
	KeyConfidenceData       = "confidence_data"
	KeyExecutionBasis       = "execution_basis"
	KeyCurrentPolicy        = "current_policy"
	KeyCurrentWeek          = "current_week"
	KeySettings             = "settings"
)

// StateKeys lists every key owned by the application state, in reset order.
var StateKeys = []string{
	KeySubjects,
	KeyPriorityResults,
	KeyWeeklyPlans,
	KeyExecutionLogs,
	KeyHistoricalPriorities,
	KeyRiskAssessments,
	KeyRiskHistory,
	KeyConfidenceData,
	KeyExecutionBasis,
	KeyCurrentPolicy,
	KeyCurrentWeek,
}
