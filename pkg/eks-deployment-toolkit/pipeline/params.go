package pipeline

// Parameters published to the parameter store by the deployment stages, for
// consumption by operators and downstream tooling.
const (
	ParamClusterName          = "/eks/clusterName"
	ParamClusterArn           = "/eks/clusterArn"
	ParamClusterEndpoint      = "/eks/clusterEndpoint"
	ParamClusterSecurityGroup = "/eks/clusterSecurityGroup"
	ParamOIDCProviderArn      = "/eks/oidc/provider_arn"
	ParamKubectlLambdaRoleArn = "/eks/kubectl/lambda/role_arn"
	ParamKubectlRoleArn       = "/eks/kubectl/role_arn"
	ParamKubectlSecurityGroup = "/eks/kubectl/sg_id"
	ParamVPCID                = "/eks/vpc_id"
)

// PublishedClusterParameters lists the parameters written by the params
// stage once the cluster exists.
func PublishedClusterParameters() []string {
	return []string{
		ParamClusterName,
		ParamClusterArn,
		ParamClusterEndpoint,
		ParamClusterSecurityGroup,
		ParamOIDCProviderArn,
		ParamKubectlLambdaRoleArn,
		ParamKubectlRoleArn,
		ParamKubectlSecurityGroup,
	}
}
