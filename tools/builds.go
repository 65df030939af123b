package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/s0up4200/jenkins-mcp/diagnose"
	"github.com/s0up4200/jenkins-mcp/filter"
	"github.com/s0up4200/jenkins-mcp/jenkins"
)

// jobArgs are the folder/repo/branch arguments shared by the job tools
type jobArgs struct {
	folder string
	repo   string
	branch string
}

func parseJobArgs(request mcp.CallToolRequest) (jobArgs, error) {
	folder, err := requireNonEmpty(request, "folderName")
	if err != nil {
		return jobArgs{}, err
	}
	repo, err := requireNonEmpty(request, "repoName")
	if err != nil {
		return jobArgs{}, err
	}
	return jobArgs{
		folder: folder,
		repo:   repo,
		branch: strings.TrimSpace(request.GetString("branchName", "")),
	}, nil
}

func (a jobArgs) location() string {
	return jobLocation(a.folder, a.repo, a.branch)
}

// registerListBuilds registers list-builds, or its list-jobs alias
func (s *Server) registerListBuilds(name string) {
	tool := mcp.NewTool(name,
		mcp.WithDescription(s.describe(name)),
		mcp.WithString("folderName",
			mcp.Required(),
			mcp.Description(folderDescription),
		),
		mcp.WithString("repoName",
			mcp.Required(),
			mcp.Description(repoDescription),
		),
		mcp.WithString("branchName",
			mcp.Description(branchDescription+" to list jobs for"),
		),
		mcp.WithBoolean("rawJson",
			mcp.Description(rawJSONDescription),
		),
		mcp.WithString("filter",
			mcp.Description(filterDescription+". Fields: Number, URL, Color, Description, Result, Building, Started"),
		),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := parseJobArgs(request)
		if err != nil {
			return s.invalidArgs(ctx, err), nil
		}
		rawJSON := request.GetBool("rawJson", false)

		hint := func(d *diagnose.Diagnosis) {
			d.Prepend(fmt.Sprintf("Verify the path %s exists in Jenkins", args.location()))
		}

		f, err := s.compileFilter(request)
		if err != nil {
			return s.invalidArgs(ctx, err), nil
		}

		jobURL := s.client.JobURL(args.folder, args.repo, args.branch)
		resp, err := s.client.GetJSON(ctx, jobURL)
		if err != nil {
			return s.failure(ctx, err, hint), nil
		}

		var job jenkins.JobBuilds
		if err := resp.Decode(&job); err != nil {
			return s.failure(ctx, err, func(d *diagnose.Diagnosis) {
				hint(d)
				notJSON(d)
			}), nil
		}

		if len(job.Builds) == 0 {
			return mcp.NewToolResultText(fmt.Sprintf(
				"📂 **No jobs found in %s for %s**\n\n"+
					"💡 **This could mean:**\n"+
					"• The folder/repo/branch path doesn't exist\n"+
					"• No jobs are configured in this location\n"+
					"• You may not have permission to view jobs here\n\n"+
					"🔍 **Try using search-jobs to find available jobs**",
				args.location(), jobURL,
			)), nil
		}

		if f != nil {
			job.Builds, err = filter.Apply(f, job.Builds, buildRecord)
			if err != nil {
				return s.invalidArgs(ctx, err), nil
			}
			if len(job.Builds) == 0 {
				return mcp.NewToolResultText(fmt.Sprintf(
					"🔍 **No builds in %s match filter `%s`**", args.location(), f.Expression(),
				)), nil
			}
		}

		if rawJSON {
			if f != nil {
				return jsonResult(job), nil
			}
			return jsonResult(resp.Data()), nil
		}

		return mcp.NewToolResultText(formatBuilds(args.location(), job.Builds)), nil
	})
}

func buildRecord(b jenkins.BuildRef) filter.Record {
	return filter.Record{
		"Name":        fmt.Sprintf("#%d", b.Number),
		"Number":      b.Number,
		"URL":         b.URL,
		"Color":       b.Color,
		"Description": b.Description,
		"Result":      b.Result,
		"Building":    b.Building,
		"Started":     b.Time(),
	}
}

func formatBuilds(location string, builds []jenkins.BuildRef) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📂 **Builds in %s** (%d found):\n\n", location, len(builds))

	for i, build := range builds {
		fmt.Fprintf(&sb, "%d. %s **%d**\n", i+1, statusIcon(build.Color, true, false), build.Number)
		fmt.Fprintf(&sb, "   🔗 %s\n", build.URL)
		if build.Description != "" {
			fmt.Fprintf(&sb, "   📝 %s\n", build.Description)
		}
		if build.LastBuild != nil {
			fmt.Fprintf(&sb, "   🏗️  Last Build: #%d", build.LastBuild.Number)
			if started := build.LastBuild.Time(); !started.IsZero() {
				fmt.Fprintf(&sb, " (%s)", started.Format("2006-01-02 15:04:05"))
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// registerBuildWithParameters registers the build-with-parameters tool
func (s *Server) registerBuildWithParameters() {
	tool := mcp.NewTool(ToolBuildWithParameters,
		mcp.WithDescription(s.describe(ToolBuildWithParameters)),
		mcp.WithString("folderName",
			mcp.Required(),
			mcp.Description(folderDescription),
		),
		mcp.WithString("repoName",
			mcp.Required(),
			mcp.Description(repoDescription),
		),
		mcp.WithString("branchName",
			mcp.Description(branchDescription+" to build"),
		),
		mcp.WithObject("params",
			mcp.Required(),
			mcp.Description("Parameters to pass to the build job (string values)"),
		),
		mcp.WithBoolean("rawJson",
			mcp.Description(rawJSONDescription),
		),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := parseJobArgs(request)
		if err != nil {
			return s.invalidArgs(ctx, err), nil
		}
		params, err := requireStringMap(request, "params")
		if err != nil {
			return s.invalidArgs(ctx, err), nil
		}
		rawJSON := request.GetBool("rawJson", false)

		buildURL := s.client.JobURL(args.folder, args.repo, args.branch) + "/buildWithParameters"
		resp, err := s.client.Do(ctx, "POST", buildURL, params)
		if err != nil {
			return s.failure(ctx, err, func(d *diagnose.Diagnosis) {
				d.Prepend(fmt.Sprintf("Verify the job %s exists and supports parameterized builds", args.location()))
				if len(params) > 0 {
					d.Append("Check if the provided parameters match the job's parameter definitions")
				}
			}), nil
		}

		if rawJSON {
			return jsonResult(resp.Data()), nil
		}

		var sb strings.Builder
		sb.WriteString("🚀 **Build Triggered Successfully!**\n\n")
		fmt.Fprintf(&sb, "📂 **Job:** %s\n", args.location())
		fmt.Fprintf(&sb, "📡 **Status Code:** %d\n", resp.StatusCode)
		if queue := resp.Location(); queue != "" {
			fmt.Fprintf(&sb, "📥 **Queue Item:** %s\n", queue)
		}
		writeParams(&sb, params)

		sb.WriteString("\n💡 **Next Steps:**\n")
		sb.WriteString("• Check Jenkins UI for build progress\n")
		sb.WriteString("• Monitor build logs for any issues\n")
		sb.WriteString("• Build will appear in the job's build history\n")

		return mcp.NewToolResultText(sb.String()), nil
	})
}
