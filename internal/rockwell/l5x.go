package rockwell

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dcruz/phasegen/internal/config"
	"github.com/dcruz/phasegen/internal/ir"
)

// L5XOptions names the containers inside the generated document. Zero values
// fall back to the project defaults used by the existing import tooling.
type L5XOptions struct {
	ControllerName string
	ProgramName    string
	RoutineName    string
}

func (o L5XOptions) withDefaults() L5XOptions {
	if o.ControllerName == "" {
		o.ControllerName = "_GEA_Codex"
	}
	if o.ProgramName == "" {
		o.ProgramName = "Phase01001_SEQ_DF_Master"
	}
	if o.RoutineName == "" {
		o.RoutineName = "CM_Valve"
	}
	return o
}

// stepFlagArraySize is the dimension of the StepFlag program tag. Step 0 is
// the idle state and is pre-initialized active.
const stepFlagArraySize = 128

// firstRungNumber is where rung numbering starts; 0 and 1 belong to the
// document's implicit preamble.
const firstRungNumber = 2

// examineInstruction matches an examine mnemonic and its operand in the flat
// rendering, for rewriting into the parenthesized L5X call form.
var examineInstruction = regexp.MustCompile(`(XIC|XIO)\s+([A-Za-z0-9_\[\]\.]+)`)

// branchMarkers rewrites the branch-stack mnemonics into the bracketed
// multi-branch syntax L5X rung text uses.
var branchMarkers = strings.NewReplacer(
	mnemonicBranchOpen+" ", "[",
	" "+mnemonicBranchNext+" ", " ,",
	" "+mnemonicBranchEnd, " ]",
)

// toRungText converts a flat mnemonic condition into L5X rung text form.
func toRungText(condition string) string {
	rewritten := examineInstruction.ReplaceAllString(condition, "${1}(${2})")
	return branchMarkers.Replace(rewritten)
}

// GenerateL5X renders the complete L5X partial-import document for the given
// step groups.
//
// The document carries, in order: the PhaseControl_StepFlags data type; the
// StepFlag program tag (128 elements, element 0 active, one comment per
// step); and the routine body, one NOP heading rung per step followed by one
// rung per surviving activation. Rungs are numbered sequentially from 2 and
// the header's TargetCount equals the total rung count exactly.
func GenerateL5X(groups []ir.StepGroup, conds ir.ConditionMap, tables config.Tables, exportedAt time.Time, opts L5XOptions) string {
	opts = opts.withDefaults()
	totalRungs := CountRungs(groups, tables)

	var b strings.Builder
	writeHeader(&b, totalRungs, exportedAt, opts)
	writeStepFlagComments(&b, groups)
	writeStepFlagData(&b)
	writeRoutine(&b, groups, conds, tables, opts)
	writeFooter(&b)
	return b.String()
}

func writeHeader(b *strings.Builder, totalRungs int, exportedAt time.Time, opts L5XOptions) {
	exportDate := exportedAt.Format("Mon Jan 02 15:04:05 2006")

	fmt.Fprintf(b, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<RSLogix5000Content SchemaRevision="1.0" SoftwareRevision="37.00" TargetType="Rung" TargetCount="%d" CurrentLanguage="en-US" ContainsContext="true" ExportDate="%s" ExportOptions="References NoRawData L5KData DecoratedData Context RoutineLabels AliasExtras IOTags NoStringData ForceProtectedEncoding AllProjDocTrans">
<Controller Use="Context" Name="%s">
<DataTypes Use="Context">
<DataType Name="PhaseControl_StepFlags" Family="NoFamily" Class="User">
<Description>
<LocalizedDescription Lang="en-US">
<![CDATA[Step Flags for Each Step -]]>
</LocalizedDescription>
</Description>
<Members>
<Member Name="ZZZZZZZZZZPhaseContr0" DataType="SINT" Dimension="0" Radix="Decimal" Hidden="true" ExternalAccess="Read/Write"/>
<Member Name="Flag" DataType="BIT" Dimension="0" Radix="Decimal" Hidden="false" Target="ZZZZZZZZZZPhaseContr0" BitNumber="0" ExternalAccess="Read/Write">
<Description>
<LocalizedDescription Lang="en-US">
<![CDATA[- Equal to]]>
</LocalizedDescription>
</Description>
</Member>
<Member Name="FlagLE" DataType="BIT" Dimension="0" Radix="Decimal" Hidden="false" Target="ZZZZZZZZZZPhaseContr0" BitNumber="1" ExternalAccess="Read/Write">
<Description>
<LocalizedDescription Lang="en-US">
<![CDATA[- Less than or Equal to]]>
</LocalizedDescription>
</Description>
</Member>
<Member Name="FlagGE" DataType="BIT" Dimension="0" Radix="Decimal" Hidden="false" Target="ZZZZZZZZZZPhaseContr0" BitNumber="2" ExternalAccess="Read/Write">
<Description>
<LocalizedDescription Lang="en-US">
<![CDATA[- Greater than or Equal to]]>
</LocalizedDescription>
</Description>
</Member>
</Members>
</DataType>
</DataTypes>
<Programs Use="Context">
<Program Use="Context" Name="%s">
<Tags Use="Context">
<Tag Name="StepFlag" TagType="Base" DataType="PhaseControl_StepFlags" Dimensions="%d" Constant="false" ExternalAccess="Read/Write" OpcUaAccess="None">
<Comments>
`, totalRungs, exportDate, opts.ControllerName, opts.ProgramName, stepFlagArraySize)
}

func writeStepFlagComments(b *strings.Builder, groups []ir.StepGroup) {
	for _, group := range groups {
		fmt.Fprintf(b, `<Comment Operand="[%d]">
<LocalizedComment Lang="en-US">
<![CDATA[%s]]>
</LocalizedComment>
</Comment>
`, group.Index, group.Name)
	}
}

func writeStepFlagData(b *strings.Builder) {
	// L5K form: element 0 has Flag and FlagGE raised alongside the
	// always-set FlagLE ([7]); every other element only FlagLE ([2]).
	values := make([]string, stepFlagArraySize)
	for i := range values {
		values[i] = "[2]"
	}
	values[0] = "[7]"

	fmt.Fprintf(b, `</Comments>
<Data Format="L5K">
<![CDATA[[%s]]]>
</Data>
<Data Format="Decorated">
<Array DataType="PhaseControl_StepFlags" Dimensions="%d">
`, strings.Join(values, ","), stepFlagArraySize)

	for i := 0; i < stepFlagArraySize; i++ {
		flag := "0"
		flagGE := "0"
		if i == 0 {
			flag = "1"
			flagGE = "1"
		}
		fmt.Fprintf(b, `<Element Index="[%d]">
<Structure DataType="PhaseControl_StepFlags">
<DataValueMember Name="Flag" DataType="BOOL" Value="%s"/>
<DataValueMember Name="FlagLE" DataType="BOOL" Value="1"/>
<DataValueMember Name="FlagGE" DataType="BOOL" Value="%s"/>
</Structure>
</Element>
`, i, flag, flagGE)
	}

	b.WriteString(`</Array>
</Data>
</Tag>
</Tags>
`)
}

func writeRoutine(b *strings.Builder, groups []ir.StepGroup, conds ir.ConditionMap, tables config.Tables, opts L5XOptions) {
	fmt.Fprintf(b, `<Routines Use="Context">
<Routine Use="Context" Name="%s">
<RLLContent Use="Context">
`, opts.RoutineName)

	separator := strings.Repeat("-", bannerWidth)
	rung := firstRungNumber

	for _, group := range groups {
		fmt.Fprintf(b, `<Rung Use="Target" Number="%d" Type="N">
<Comment>
<LocalizedComment Lang="en-US">
<![CDATA[%s
Step %02d -- %s
%s]]>
</LocalizedComment>
</Comment>
<Text>
<![CDATA[NOP();]]>
</Text>
</Rung>
`, rung, separator, group.Index, group.Name, separator)
		rung++

		for _, act := range group.Activations {
			tag, ok := resolveTag(tables, act)
			if !ok {
				continue
			}
			clause := conditionClause(conds, group.Index, tag)
			condition := toRungText(RenderCondition(clause))
			fmt.Fprintf(b, `<Rung Use="Target" Number="%d" Type="N">
<Text>
<![CDATA[%s%s(%s);]]>
</Text>
</Rung>
`, rung, condition, mnemonicLatch, tag)
			rung++
		}
	}
}

func writeFooter(b *strings.Builder) {
	b.WriteString(`</RLLContent>
</Routine>
</Routines>
</Program>
</Programs>
</Controller>
</RSLogix5000Content>
`)
}
