package tools

// Tool names as exposed over MCP
const (
	ToolSanityCheck         = "sanity-check"
	ToolSearchJobs          = "search-jobs"
	ToolListBuilds          = "list-builds"
	ToolListJobs            = "list-jobs"
	ToolBuildWithParameters = "build-with-parameters"
	ToolGetJobInfo          = "get-job-info"
	ToolGetJobLogs          = "get-job-logs"
	ToolFetchFromJenkins    = "fetch-from-jenkins"
	ToolInvokeRequest       = "invoke-request"
)

const listDescription = "List all jobs within a specific Jenkins folder and repository structure. " +
	"Use this to browse the hierarchical organization of your Jenkins jobs. " +
	"Optionally specify a branch to see branch-specific jobs."

var baseDescriptions = map[string]string{
	ToolSanityCheck: "Test connectivity and authentication with your Jenkins server. " +
		"This verifies that the server is reachable and your credentials are working correctly.",
	ToolSearchJobs: "Search for Jenkins jobs by keyword or pattern. " +
		"This helps you discover available jobs when you don't know the exact job name. " +
		"Returns matching jobs with their paths and types.",
	ToolListBuilds: listDescription,
	ToolListJobs:   listDescription,
	ToolBuildWithParameters: "Trigger a Jenkins build with custom parameters. " +
		"This starts a new build job with the specified configuration. " +
		"Supports environment variables, version numbers, deployment targets, and other custom parameters defined in the job.",
	ToolGetJobInfo: "Get detailed information about a specific Jenkins job. " +
		"This provides comprehensive job details including status, recent builds, health reports, parameters, and configuration information.",
	ToolGetJobLogs: "Get the console log for a specific Jenkins job build. " +
		"This is useful for debugging and viewing the output of a completed or in-progress build. " +
		"Provide the full job path in 'fullname', including any folders or branches, for example 'MyProject/WebApp/develop'. " +
		"Job names with spaces are handled automatically. " +
		"Use 'search-jobs' to find the exact job path and 'get-job-info' to confirm build numbers before fetching logs. " +
		"Logs can be very long, so prefer 'ntail' to get the last lines and raise it if the output looks truncated.",
	ToolFetchFromJenkins: "Retrieve raw data from any Jenkins API endpoint. " +
		"This is a powerful generic tool for accessing Jenkins data that isn't covered by other specific tools. " +
		"Useful for custom integrations and advanced Jenkins API usage.",
	ToolInvokeRequest: "Execute any HTTP request to Jenkins with full control over method and parameters. " +
		"This is the most flexible tool for advanced Jenkins operations like creating jobs, updating configurations, or performing administrative tasks.",
}

const (
	rawJSONDescription = "Return the Jenkins response as indented JSON instead of a formatted summary"
	filterDescription  = "Optional expression to narrow results, e.g. `Color == \"red\"`, `icontains(Name, \"deploy\")` or `isRunning(Color)`"
	folderDescription  = "The Jenkins folder name (top-level organization)"
	repoDescription    = "The repository or project name within the folder"
	branchDescription  = "Optional: specific branch name"
	fullnameDesc       = "The full name/path of the Jenkins job (use / to separate folder levels)"
)
