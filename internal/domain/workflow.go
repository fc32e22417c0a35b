package domain

// WorkflowStep is the admin UI's stage in the team-selection-then-management
// sequence.
type WorkflowStep string

const (
	WorkflowStepSelectTeam WorkflowStep = "select_team"
	WorkflowStepManageTeam WorkflowStep = "manage_team"
)

// WorkflowSelection is the resolved workflow state for an admin. Step is
// manage_team only while CurrentWorkingTeamID names a currently visible team.
type WorkflowSelection struct {
	CurrentWorkingTeamID *string
	Step                 WorkflowStep
}
