package types

// AgentID uniquely identifies a registered agent.
type AgentID string

// Domain is the AWS service area an agent is bound to.
type Domain string

const (
	DomainEC2         Domain = "EC2"
	DomainVPC         Domain = "VPC"
	DomainIAM         Domain = "IAM"
	DomainEKS         Domain = "EKS"
	DomainCloudWatch  Domain = "CloudWatch"
	DomainLambda      Domain = "Lambda"
	DomainECS         Domain = "ECS"
	DomainS3          Domain = "S3"
	DomainSNS         Domain = "SNS"
	DomainSQS         Domain = "SQS"
	DomainRDS         Domain = "RDS"
	DomainElastiCache Domain = "ElastiCache"
	DomainAurora      Domain = "Aurora"
)

// Role distinguishes clarification-phase researchers from
// solution-phase specialists.
type Role string

const (
	RoleResearcher Role = "researcher"
	RoleSpecialist Role = "specialist"
)

// Phase is the stage of a routing round.
type Phase string

const (
	PhaseQuestions Phase = "questions"
	PhaseSolutions Phase = "solutions"
)

// RoleForPhase returns the agent role consulted during a phase:
// researchers gather clarification questions, specialists propose solutions.
func RoleForPhase(phase Phase) Role {
	if phase == PhaseSolutions {
		return RoleSpecialist
	}
	return RoleResearcher
}

// AgentProfile describes one registered domain agent. Profiles are created
// at process start and are immutable for the process lifetime.
type AgentProfile struct {
	ID             AgentID  `json:"id"`
	Domain         Domain   `json:"domain"`
	Role           Role     `json:"role"`
	Expertise      []string `json:"expertise,omitempty"`
	PromptTemplate string   `json:"prompt_template,omitempty"`
}
