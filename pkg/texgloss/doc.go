// Package texgloss 为 LaTeX 源码自动标注词汇表术语。
//
// 在每个术语的首次有效出现之后插入标记（默认 $^G$），
// 标题、图表说明与引用类命令的参数中不插入。
//
// # 流程
//
//  1. [Locate] 在候选位置中查找术语表文件
//  2. [LoadTerms] 提取 \term{...} 定义的术语（含字母分卷文件）
//  3. [NewTagger] 构建匹配器，长术语优先
//  4. [Walk] 遍历源码树并跳过排除的目录与文件
//  5. [Tagger.Apply] 计算插入位置并生成新文本
//
// # 快速开始
//
//	tagger, err := texgloss.NewTagger([]string{"API", "Sistema operativo"})
//	out, inserts, err := tagger.Apply(`Il sistema operativo espone una API e altro.`)
//
// # 插入规则
//
//   - 匹配不区分大小写，按 Unicode 单词边界判断，前面不能是反斜杠
//   - 每个术语只标注一次；正文中（排除区间与更长术语之外）已有标记的术语不再处理，
//     因此重复执行结果不变
//   - 出现位置后面必须是空白或文本结尾（形如 1.API.2 的文本不会被标注）
//   - 与更长术语重叠的出现不标注
//
// 排除区间由 [Exclusions] 计算，参数按花括号配对截取而非正则。
package texgloss
