package route

import (
	"strings"

	"github.com/doitintl/flexsolve/types"
)

// domainKeywords maps lexical cues to service areas. Order fixes the
// canonical inference order so results are deterministic.
var domainKeywords = []struct {
	domain   types.Domain
	keywords []string
}{
	{types.DomainEC2, []string{"ec2", "instance", "ami", "auto scaling", "health check"}},
	{types.DomainVPC, []string{"vpc", "subnet", "route table", "security group", "nacl", "peering"}},
	{types.DomainIAM, []string{"iam", "policy", "permission", "role", "access denied"}},
	{types.DomainEKS, []string{"eks", "kubernetes", "kubectl", "pod", "node group"}},
	{types.DomainCloudWatch, []string{"cloudwatch", "alarm", "metric", "log group", "dashboard"}},
	{types.DomainLambda, []string{"lambda", "function", "cold start", "invocation"}},
	{types.DomainECS, []string{"ecs", "fargate", "task definition", "container"}},
	{types.DomainS3, []string{"s3", "bucket", "object storage", "presigned"}},
	{types.DomainSNS, []string{"sns", "topic", "notification", "fan-out"}},
	{types.DomainSQS, []string{"sqs", "queue", "dead-letter", "visibility timeout"}},
	{types.DomainRDS, []string{"rds", "postgres", "mysql", "read replica"}},
	{types.DomainElastiCache, []string{"elasticache", "redis", "memcached", "cache"}},
	{types.DomainAurora, []string{"aurora", "serverless database", "global database"}},
}

// InferDomains returns the service areas a text lexically refers to, in
// canonical order. An empty result means no specific service was recognized.
func InferDomains(text string) []types.Domain {
	lower := strings.ToLower(text)
	var out []types.Domain
	for _, entry := range domainKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				out = append(out, entry.domain)
				break
			}
		}
	}
	return out
}

// PrimaryDomain returns the first inferred service area, or false when the
// text names none.
func PrimaryDomain(text string) (types.Domain, bool) {
	domains := InferDomains(text)
	if len(domains) == 0 {
		return "", false
	}
	return domains[0], true
}
