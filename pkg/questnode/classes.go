package questnode

import (
	"maps"
	"slices"
)

// Placeholder descriptions.
const (
	// NoDescription is reported for classes missing from the table.
	NoDescription = "no description"
	// NoMatch marks classes that were seen in a dump but have no table entry.
	NoMatch = "no matching description"
)

// ClassDescription pairs a node class with its description.
type ClassDescription struct {
	Class       string `json:"class" yaml:"class"`
	Description string `json:"description" yaml:"description"`
}

// Describe returns the description of a node class, NoDescription when the
// class is unknown.
func Describe(class string) string {
	if d, ok := classDescriptions[class]; ok {
		return d
	}

	return NoDescription
}

// Known reports whether class has a table entry.
func Known(class string) bool {
	_, ok := classDescriptions[class]

	return ok
}

// Descriptions returns every table entry sorted by class name.
func Descriptions() []ClassDescription {
	out := make([]ClassDescription, 0, len(classDescriptions))

	for _, class := range slices.Sorted(maps.Keys(classDescriptions)) {
		out = append(out, ClassDescription{Class: class, Description: classDescriptions[class]})
	}

	return out
}

var classDescriptions = map[string]string{
	// Base classes.
	"questNodeDefinition":                    "base class of every quest node",
	"questDisableableNodeDefinition":         "base class of disableable nodes",
	"questSignalStoppingNodeDefinition":      "base class of nodes that stop signal propagation",
	"questTypedSignalStoppingNodeDefinition": "typed signal stopping node",
	"questStartEndNodeDefinition":            "base class of start/end nodes",
	"questStartNodeDefinition":               "quest start node",
	"questEndNodeDefinition":                 "quest end node",
	"questIONodeDefinition":                  "base class of input/output nodes",
	"questInputNodeDefinition":               "input node",
	"questOutputNodeDefinition":              "output node",
	"questGraphDefinition":                   "quest graph definition",
	"questSocketDefinition":                  "socket definition",

	// Character manager.
	"questCharacterManagerNodeDefinition":                       "character manager node",
	"questCharacterManagerParameters_SetAttitudeGroupForPuppet": "set AI attitude group",
	"questCharacterManagerParameters_SetGroupsAttitude":         "set groups attitude",
	"questCharacterManagerParameters_SetMortality":              "set mortality",
	"questCharacterManagerParameters_SetAnimset":                "set animset",
	"questCharacterManagerParameters_SetLowGravity":             "set low gravity",
	"questCharacterManagerParameters_EnableBumps":               "enable bumps",
	"questCharacterManagerParameters_SetStatusEffect":           "set status effect",
	"questCharacterManagerParameters_SetReactionPreset":         "set reaction preset",
	"questCharacterManagerParameters_SetGender":                 "set gender",
	"questCharacterManagerParameters_SetAsCrowdObstacle":        "set as crowd obstacle",
	"questCharacterManagerParameters_SetProgressionBuild":       "set progression build",
	"questCharacterManagerParameters_SetLifePath":               "set life path",
	"questCharacterManagerParameters_HealPlayer":                "heal player",
	"questCharacterManagerCombat_ModifyHealth":                  "modify health",
	"questCharacterManagerCombat_Kill":                          "kill character",
	"questCharacterManagerCombat_EquipWeapon":                   "equip weapon",
	"questCharacterManagerCombat_SetWeaponState":                "set weapon state",
	"questCharacterManagerCombat_SetDeathDirection":             "set death direction",
	"questCharacterManagerCombat_ChangeLevel":                   "change level",
	"questCharacterManagerCombat_ManageRagdoll":                 "manage ragdoll",
	"questCharacterManagerCombat_AssignSquad":                   "assign squad",
	"questCharacterManagerParameters_SetCombatSpace":            "set combat space",
	"questCharacterManagerVisuals_ChangeEntityAppearance":       "change entity appearance",
	"questCharacterManagerVisuals_PrefetchEntityAppearance":     "prefetch entity appearance",
	"questCharacterManagerVisuals_GenitalsManager":              "genitals manager",
	"questCharacterManagerVisuals_BreastSizeController":         "breast size controller",
	"questCharacterManagerVisuals_SetBrokenNoseStage":           "set broken nose stage",

	// Entity manager.
	"questEntityManagerNodeDefinition":                         "entity manager node",
	"questEntityManagerSetAttachment_NodeType":                 "set attachment",
	"questEntityManagerSetDestructionState_NodeType":           "set destruction state",
	"questEntityManagerManageBinkComponent_NodeType":           "manage bink component",
	"questEntityManagerSetMeshAppearance_NodeType":             "set mesh appearance",
	"questEntityManagerEnablePlayerTPPRepresentation_NodeType": "enable player third-person representation",
	"questEntityManagerToggleComponent_NodeType":               "toggle component",
	"questEntityManagerChangeAppearance_NodeType":              "change appearance",
	"questEntityManagerMountPuppet_NodeType":                   "mount puppet",
	"questEntityManagerSendAnimationEvent_NodeType":            "send animation event",
	"questEntityManagerSetStat_NodeType":                       "set stat",
	"questEntityManagerToggleMirrorsArea_NodeType":             "toggle mirrors area",
	"questEntityManagerSetAttachment_ToActor":                  "attach to actor",
	"questEntityManagerDestroyCarriedObject":                   "destroy carried object",
	"questEntityManagerSetAttachment_ToNode":                   "attach to node",
	"questEntityManagerSetAttachment_ToWorld":                  "attach to world",

	// UI manager.
	"questUIManagerNodeDefinition":                   "UI manager node",
	"questAddCombatLogMessage_NodeType":              "add combat log message",
	"questSwitchNameplate_NodeType":                  "switch nameplate",
	"questAddBraindanceClue_NodeType":                "add braindance clue",
	"questDiscoverBraindanceClue_NodeType":           "discover braindance clue",
	"questDisplayMessageBox_NodeType":                "display message box",
	"questProgressBar_NodeType":                      "progress bar",
	"questProximityProgressBar_NodeType":             "proximity progress bar",
	"questShowDialogIndicator_NodeType":              "show dialog indicator",
	"questHUDVideo_NodeType":                         "HUD video",
	"questSetLocationName_NodeType":                  "set location name",
	"questWarningMessage_NodeType":                   "warning message",
	"questShowOnscreen_NodeType":                     "show onscreen",
	"questOverrideLoadingScreen_NodeType":            "override loading screen",
	"questGlitchLoadingScreen_NodeType":              "glitch loading screen",
	"questWaitForAnyKeyLoadingScreen_NodeType":       "wait for any key loading screen",
	"questSetUIGameContext_NodeType":                 "set UI game context",
	"questSetHUDEntryForcedVisibility_NodeType":      "set HUD entry forced visibility",
	"questQuickItemsManager_NodeType":                "quick items manager",
	"questVendorPanel_NodeType":                      "vendor panel",
	"questOpenBriefing_NodeType":                     "open briefing",
	"questEnableBraindanceFinish_NodeType":           "enable braindance finish",
	"questSwitchToScenario_NodeType":                 "switch to scenario",
	"questSetBriefingSize_NodeType":                  "set briefing size",
	"questSetBriefingAlignment_NodeType":             "set briefing alignment",
	"questShowNarrativeEvent_NodeType":               "show narrative event",
	"questShowCustomTooltip_NodeType":                "show custom tooltip",
	"questTutorial_NodeType":                         "tutorial",
	"questToggleMinimapVisibility_NodeSubType":       "toggle minimap visibility",
	"questToggleStealthMappinVisibility_NodeSubType": "toggle stealth mappin visibility",
	"questShowHighlight_NodeSubType":                 "show highlight",
	"questShowBracket_NodeSubType":                   "show bracket",
	"questShowOverlay_NodeSubType":                   "show overlay",
	"questShowPopup_NodeSubType":                     "show popup",
	"questBriefingSequencePlayer_NodeType":           "briefing sequence player",
	"questTriggerIconGeneration_NodeType":            "trigger icon generation",
	"questInputHint_NodeType":                        "input hint",
	"questInputHintGroup_NodeType":                   "input hint group",
	"questShowLevelUpNotification_NodeType":          "show level up notification",
	"questShowCustomQuestNotification_NodeType":      "show custom quest notification",
	"questSetMetaQuestProgress_NodeType":             "set meta quest progress",
	"questSetSaveDataLoadingScreen_NodeType":         "set save data loading screen",
	"questSetFastTravelBinksGroup_NodeType":          "set fast travel binks group",
	"questOpenPhotoMode_NodeType":                    "open photo mode",
	"questShowPointOfNoReturnPrompt_NodeType":        "show point of no return prompt",
	"questFinalBoardsVideosFinished_NodeType":        "final boards videos finished",
	"questFinalBoardsEnableSkipCredits_NodeType":     "final boards enable skip credits",
	"questFinalBoardsOpenSpeakerScreen_NodeType":     "final boards open speaker screen",

	// Vehicles.
	"questVehicleNodeDefinition":                     "vehicle manager node",
	"questAssignCharacter_NodeType":                  "assign character",
	"questRequestVehicleCameraPerspective_NodeType":  "request vehicle camera perspective",
	"questMoveOnSpline_NodeType":                     "move on spline",
	"questToggleCombatForPlayer_NodeType":            "toggle combat for player",
	"questToggleSwitchSeatsForPlayer_NodeType":       "toggle switch seats for player",
	"questMoveOnSplineAndKeepDistance_NodeType":      "move on spline and keep distance",
	"questMoveOnSplineControlRubberbanding_NodeType": "move on spline with rubberbanding control",
	"questStartVehicle_NodeType":                     "start vehicle",
	"questStopVehicle_NodeType":                      "stop vehicle",
	"questFollowObject_NodeType":                     "follow object",
	"questResetMovement_NodeType":                    "reset movement",
	"questSetAutopilot_NodeType":                     "set autopilot",
	"questToggleBrokenTire_NodeType":                 "toggle broken tire",
	"questToggleForceBrake_NodeType":                 "toggle force brake",
	"questFlushAutopilot_NodeType":                   "flush autopilot",
	"questToggleTankCustomFPPLockOff_NodeType":       "toggle tank custom FPP lock-off",
	"questToggleWeaponEnabled_NodeType":              "toggle weapon enabled",
	"questOverrideSplineSpeed_NodeType":              "override spline speed",
	"questRepair_NodeType":                           "repair",
	"questToggleDoor_NodeType":                       "toggle door",
	"questSpawnPlayerVehicle_NodeType":               "spawn player vehicle",
	"questTeleport_NodeType":                         "teleport",
	"questForbiddenTrigger_NodeType":                 "forbidden trigger",
	"questEnableVehicleSummon_NodeType":              "enable vehicle summon",
	"questEnablePlayerVehicle_NodeType":              "enable player vehicle",
	"questToggleWindow_NodeType":                     "toggle window",
	"questUnassignAll_NodeType":                      "unassign all",
	"questForcePhysicsWakeUp_NodeType":               "force physics wake-up",
	"questSetImmovable_NodeType":                     "set immovable",

	// AI commands.
	"questAICommandNodeBase":                   "base class of AI command nodes",
	"questConfigurableAICommandNode":           "configurable AI command node",
	"questSendAICommandNodeDefinition":         "send AI command",
	"questCombatNodeDefinition":                "combat node",
	"questMovePuppetNodeDefinition":            "move puppet",
	"questMiscAICommandNode":                   "misc AI command",
	"questTeleportPuppetNodeDefinition":        "teleport puppet",
	"questEquipItemNodeDefinition":             "equip item",
	"questUnequipItemNodeDefinition":           "unequip item",
	"questUseWorkspotNodeDefinition":           "use workspot",
	"questRotateToNodeDefinition":              "rotate to target",
	"questVehicleNodeCommandDefinition":        "vehicle command",
	"questForcedBehaviourNodeDefinition":       "forced behaviour",
	"questClearForcedBehavioursNodeDefinition": "clear forced behaviours",
	"questLookAtDrivenTurnsNode":               "look-at driven turns",

	// Logic.
	"questLogicalBaseNodeDefinition": "base class of logical nodes",
	"questLogicalAndNodeDefinition":  "logical AND node",
	"questLogicalXorNodeDefinition":  "logical XOR node",
	"questLogicalHubNodeDefinition":  "logical hub node",

	// Conditions.
	"questIBaseCondition":                     "base condition interface",
	"questCondition":                          "condition",
	"questTypedCondition":                     "typed condition",
	"questLogicalCondition":                   "logical condition",
	"questConditionNodeDefinition":            "condition node",
	"questPauseConditionNodeDefinition":       "pause condition node",
	"questObjectCondition":                    "object condition",
	"questInteraction_ConditionType":          "interaction condition",
	"questInventory_ConditionType":            "inventory condition",
	"questInspect_ConditionType":              "inspect condition",
	"questScan_ConditionType":                 "scan condition",
	"questEntryScanned_ConditionType":         "entry scanned condition",
	"questDevice_ConditionType":               "device condition",
	"questDestruction_ConditionType":          "destruction condition",
	"questTagged_ConditionType":               "tagged condition",
	"questPaymentCondition":                   "payment condition",
	"questPaymentBalanced_ConditionType":      "balanced payment condition",
	"questPaymentFixedAmount_ConditionType":   "fixed amount payment condition",
	"questStatsCondition":                     "stats condition",
	"questStat_ConditionType":                 "stat condition",
	"questStreetCredTier_ConditionType":       "street cred tier condition",
	"questLifePath_ConditionType":             "life path condition",
	"questBuild_ConditionType":                "build condition",
	"questCameraFocus_ConditionType":          "camera focus condition",
	"questVisionMode_ConditionType":           "vision mode condition",
	"questPlatform_ConditionType":             "platform condition",
	"questInputAction_ConditionType":          "input action condition",
	"questInputController_ConditionType":      "input controller condition",
	"questPhone_ConditionType":                "phone condition",
	"questPhonePickUp_ConditionType":          "phone pick-up condition",
	"questPrereq_ConditionType":               "prerequisite condition",
	"questWeather_ConditionType":              "weather condition",
	"questRadio_ConditionType":                "radio condition",
	"questRadioTrack_ConditionType":           "radio track condition",
	"questPlaylistTrackChanged_ConditionType": "playlist track changed condition",
	"questLanguage_ConditionType":             "language condition",
	"questGOGReward_ConditionType":            "GOG reward condition",
	"questSaveLock_ConditionType":             "save lock condition",
	"questTimeCondition":                      "time condition",
	"questRealtimeDelay_ConditionType":        "realtime delay condition",
	"questGameTimeDelay_ConditionType":        "game time delay condition",
	"questTimePeriod_ConditionType":           "time period condition",

	// Environment and game managers.
	"questEnvironmentManagerNodeDefinition": "environment manager node",
	"questPlayEnv_NodeType":                 "play environment",
	"questPlayEnv_OverrideGlobalLight":      "override global light",
	"questPlayEnv_ForceRelitEnvProbe":       "force relit environment probe",
	"questPlayEnv_SetWeather":               "set weather",
	"questGameManagerNodeDefinition":        "game manager node",
	"questTimeDilation_World":               "world time dilation",
	"questTimeDilation_Player":              "player time dilation",
	"questTimeDilation_Entity":              "entity time dilation",
	"questContentTokenManager_NodeType":     "content token manager",
	"questGameplayRestrictions_NodeType":    "gameplay restrictions",
	"questSetTimer_NodeType":                "set timer",
	"questRumble_NodeType":                  "rumble",
	"questEventManagerNodeDefinition":       "event manager node",

	// Effects and rendering.
	"questFXManagerNodeDefinition":       "FX manager node",
	"questPlayFX_NodeType":               "play FX",
	"questPreloadFX_NodeType":            "preload FX",
	"questRenderFxManagerNodeDefinition": "render FX manager node",
	"questSetFadeInOut_NodeType":         "set fade in/out",
	"questSetDebugView_NodeType":         "set debug view",
	"questSetCyberspacePostFX_NodeType":  "set cyberspace post FX",
	"questSetRenderLayer_NodeType":       "set render layer",

	// Items and interactive objects.
	"questItemManagerNodeDefinition":              "item manager node",
	"questAddRemoveItem_NodeType":                 "add/remove item",
	"questDropItemFromSlot_NodeType":              "drop item from slot",
	"questSetItemTags_NodeType":                   "set item tags",
	"questTransferItem_NodeType":                  "transfer item",
	"questUseWeapon_NodeType":                     "use weapon",
	"questInjectLoot_NodeType":                    "inject loot",
	"questInteractiveObjectManagerNodeDefinition": "interactive object manager node",
	"questSetInteractionState_NodeType":           "set interaction state",
	"questHackingManager_NodeType":                "hacking manager",
	"questDeviceManager_NodeType":                 "device manager",
	"questTriggerManagerNodeDefinition":           "trigger manager node",
	"questSetTriggerState_NodeType":               "set trigger state",

	// Journal and phone.
	"questJournalNodeDefinition":      "journal node",
	"questJournalEntry_NodeType":      "journal entry",
	"questJournalQuestEntry_NodeType": "journal quest entry",
	"questJournalTrackQuest_NodeType": "track quest",
	"questPhoneManagerNodeDefinition": "phone manager node",
	"questAddRemoveContact_NodeType":  "add/remove contact",
	"questSetPhoneStatus_NodeType":    "set phone status",
	"questCallContact_NodeType":       "call contact",
	"questSendMessage_NodeType":       "send message",

	// Scene, audio and behaviour.
	"questSceneManagerNodeDefinition":          "scene manager node",
	"questSetTier_NodeType":                    "set tier",
	"questPlayerLookAt_NodeType":               "player look-at",
	"questNPCLookAt_NodeType":                  "NPC look-at",
	"questSetFOV_NodeType":                     "set FOV",
	"questAudioNodeDefinition":                 "audio node",
	"questAudioCharacterManagerNodeDefinition": "character audio manager",
	"questAudioMixNodeType":                    "audio mix",
	"questAudioSwitchNodeType":                 "audio switch",
	"questBehaviourManagerNodeDefinition":      "behaviour manager node",
	"questJumpWorkspotAnim_NodeType":           "jump workspot animation",
	"questStopWorkspot_NodeType":               "stop workspot",

	// Other managers.
	"questFactsDBManagerNodeDefinition":     "facts DB manager node",
	"questSetVar_NodeType":                  "set variable",
	"questMapPinManagerNodeDefinition":      "map pin manager",
	"questRewardManagerNodeDefinition":      "reward manager node",
	"questGiveReward_NodeType":              "give reward",
	"questSpawnManagerNodeDefinition":       "spawn manager node",
	"questTimeManagerNodeDefinition":        "time manager node",
	"questVisionModesManagerNodeDefinition": "vision modes manager node",
	"questVoicesetManagerNodeDefinition":    "voiceset manager node",
	"questRecordingNodeDefinition":          "recording node",

	// Flow control and structure.
	"questFlowControlNodeDefinition":               "flow control node",
	"questSwitchNodeDefinition":                    "switch node",
	"questRandomizerNodeDefinition":                "randomizer node",
	"questCheckpointNodeDefinition":                "checkpoint node",
	"questEmbeddedGraphNodeDefinition":             "embedded graph node",
	"questPhaseNodeDefinition":                     "phase node",
	"questDeletionMarkerNodeDefinition":            "deletion marker node",
	"questMultiplayerAIDirectorNodeDefinition":     "multiplayer AI director node",
	"questMultiplayerChoiceTokenNodeDefinition":    "multiplayer choice token node",
	"questMultiplayerJunctionDialogNodeDefinition": "multiplayer junction dialog node",
	"questMultiplayerTeleportPuppetNodeDefinition": "multiplayer teleport puppet node",
	"questBaseObjectNodeDefinition":                "base object node",
	"questCutControlNodeDefinition":                "cut control node",
	"questMinigameNodeDefinition":                  "minigame node",
	"questPlaceholderNodeDefinition":               "placeholder node",
	"questPuppeteerNodeDefinition":                 "puppeteer node",
	"questPuppetAIManagerNodeDefinition":           "puppet AI manager node",
	"questPopulactionControllerNodeDefinition":     "population controller node",
	"questInstancedCrowdControlNodeDefinition":     "instanced crowd control node",
	"questTransformAnimatorNodeDefinition":         "transform animator node",
	"questTeleportVehicleNodeDefinition":           "teleport vehicle node",
	"questWorkspotParamNodeDefinition":             "workspot param node",
}
