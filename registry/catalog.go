package registry

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/doitintl/flexsolve/types"
)

// catalogEntry describes one AWS service area with the expertise carried by
// its researcher/specialist pair.
type catalogEntry struct {
	domain    types.Domain
	expertise []string
}

// awsCatalog lists the built-in service areas. Order here fixes the default
// contributor order used for aggregation tie-breaks.
var awsCatalog = []catalogEntry{
	{types.DomainEC2, []string{"EC2 instance types", "Auto Scaling", "instance performance", "EC2 networking", "EC2 security"}},
	{types.DomainVPC, []string{"VPC design", "subnets and routing", "security groups and NACLs", "VPC peering", "VPN and Direct Connect"}},
	{types.DomainIAM, []string{"IAM policies", "roles and permissions", "identity federation", "least-privilege design", "access analysis"}},
	{types.DomainEKS, []string{"EKS cluster management", "Kubernetes workloads", "container orchestration", "EKS networking and security"}},
	{types.DomainCloudWatch, []string{"metrics and alarms", "log aggregation", "dashboards", "CloudWatch agent", "anomaly detection"}},
	{types.DomainLambda, []string{"function configuration", "event sources", "cold starts", "concurrency limits", "Lambda networking"}},
	{types.DomainECS, []string{"task definitions", "service scheduling", "Fargate", "ECS networking", "capacity providers"}},
	{types.DomainS3, []string{"bucket policies", "storage classes", "lifecycle rules", "replication", "S3 performance"}},
	{types.DomainSNS, []string{"topics and subscriptions", "message filtering", "fan-out patterns", "delivery retries"}},
	{types.DomainSQS, []string{"standard and FIFO queues", "visibility timeouts", "dead-letter queues", "queue throughput"}},
	{types.DomainRDS, []string{"engine configuration", "read replicas", "backups and snapshots", "parameter groups", "RDS performance"}},
	{types.DomainElastiCache, []string{"Redis and Memcached clusters", "eviction policies", "cluster scaling", "cache invalidation"}},
	{types.DomainAurora, []string{"Aurora clusters", "serverless scaling", "global databases", "failover behavior"}},
}

const researcherTemplate = `You are a specialized AWS researcher for %s.
You have deep expertise in: %s.

Return a numbered list of essential questions only when required information
is missing and the answers would significantly impact the solution.
If the problem is outside your domain or you have no questions, return only
"TERMINATE".`

const specialistTemplate = `You are an AWS %s specialist.
You have deep expertise in: %s.

Propose complete, actionable solution steps with ready-to-use commands.
End your response with "TERMINATE".`

// ResearcherID returns the canonical researcher agent ID for a domain.
func ResearcherID(domain types.Domain) types.AgentID {
	return types.AgentID(strings.ToLower(string(domain)) + "_researcher")
}

// SpecialistID returns the canonical specialist agent ID for a domain.
func SpecialistID(domain types.Domain) types.AgentID {
	return types.AgentID(strings.ToLower(string(domain)) + "_specialist")
}

// DefaultProfiles returns the built-in researcher and specialist profiles
// for every supported AWS service area. Researchers come first, then
// specialists, each block in catalog order.
func DefaultProfiles() []types.AgentProfile {
	profiles := make([]types.AgentProfile, 0, 2*len(awsCatalog))
	for _, e := range awsCatalog {
		profiles = append(profiles, types.AgentProfile{
			ID:             ResearcherID(e.domain),
			Domain:         e.domain,
			Role:           types.RoleResearcher,
			Expertise:      e.expertise,
			PromptTemplate: fmt.Sprintf(researcherTemplate, e.domain, strings.Join(e.expertise, ", ")),
		})
	}
	for _, e := range awsCatalog {
		profiles = append(profiles, types.AgentProfile{
			ID:             SpecialistID(e.domain),
			Domain:         e.domain,
			Role:           types.RoleSpecialist,
			Expertise:      e.expertise,
			PromptTemplate: fmt.Sprintf(specialistTemplate, e.domain, strings.Join(e.expertise, ", ")),
		})
	}
	return profiles
}

// NewDefault creates a registry pre-populated with the built-in AWS catalog.
func NewDefault(logger *zap.Logger) *Registry {
	r, err := New(logger, DefaultProfiles()...)
	if err != nil {
		// The built-in catalog has unique IDs; this cannot happen.
		panic(err)
	}
	return r
}
