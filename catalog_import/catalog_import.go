package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"repolens/internal/model/dto"
	"repolens/internal/model/query"
	"repolens/pkg/config"
	"repolens/pkg/util"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

// readRepos accepts one owner/repo per line, or comma separated; # starts a comment.
func readRepos(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	seen := make(map[string]struct{})
	repos := make([]string, 0)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, part := range strings.Split(line, ",") {
			repo := strings.TrimSpace(part)
			if repo == "" {
				continue
			}
			if _, _, ok := util.SplitOrgRepo(repo); !ok {
				zap.S().Warnf("跳过非法仓库名: %s", repo)
				continue
			}
			if _, ok := seen[repo]; ok {
				continue
			}
			seen[repo] = struct{}{}
			repos = append(repos, repo)
		}
	}
	return repos, scanner.Err()
}

func enqueueChunk(ctx context.Context, domain, secret string, repos []string) ([]string, error) {
	body, err := sonic.Marshal(&query.BatchParseReq{Repos: repos})
	if err != nil {
		return nil, err
	}
	resp, err := util.PostForDomain(ctx, domain, "/api/v1/repos/batch", "application/json", body, util.BearerHeaders(secret))
	if err != nil {
		return nil, err
	}
	if !resp.Success() {
		return nil, fmt.Errorf("API返回非成功状态码：%d，响应内容：%s", resp.StatusCode, string(resp.Body))
	}
	var enqueueResp dto.EnqueueResp
	if err = sonic.Unmarshal(resp.Body, &enqueueResp); err != nil {
		return nil, fmt.Errorf("解析JSON响应失败：%w", err)
	}
	return enqueueResp.ProcessedRepos, nil
}

var (
	configPath string
	reposPath  string
	domain     string
	chunkSize  int
)

func init() {
	flag.StringVar(&configPath, "config", "./config/config.yaml", "配置文件路径")
	flag.StringVar(&reposPath, "repos", "./config/catalog.txt", "仓库列表文件")
	flag.StringVar(&domain, "domain", "", "服务地址，默认取配置中的host和port")
	flag.IntVar(&chunkSize, "chunk", 50, "每批提交的仓库数")
}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Printf("初始化zap日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	flag.Parse()

	conf, err := config.Scan(configPath)
	if err != nil {
		zap.S().Fatalf("读取配置文件失败：%v，路径：%s", err, configPath)
	}
	if domain == "" {
		domain = fmt.Sprintf("http://%s:%d", conf.GetHost(), conf.Server.Port)
	}
	if chunkSize <= 0 {
		chunkSize = 50
	}

	repos, err := readRepos(reposPath)
	if err != nil {
		zap.S().Fatalf("读取仓库列表失败：%v，路径：%s", err, reposPath)
	}
	zap.S().Infof("读取到%d个仓库，开始分批入队", len(repos))

	total := 0
	for start := 0; start < len(repos); start += chunkSize {
		end := start + chunkSize
		if end > len(repos) {
			end = len(repos)
		}
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		accepted, err := enqueueChunk(ctx, domain, conf.Server.AppSecret, repos[start:end])
		cancel()
		if err != nil {
			zap.S().Fatalf("第%d-%d个仓库入队失败：%v", start+1, end, err)
		}
		total += len(accepted)
		zap.S().Infof("第%d-%d个仓库入队成功", start+1, end)
	}
	zap.S().Infof("仓库入队全部完成，共%d个", total)
}
