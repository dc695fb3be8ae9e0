package catalog

// hdpManifest returns the identities and directories needed by Hortonworks
// Data Platform. Requested as either "hdp" or "hwx".
func hdpManifest() *Manifest {
	smoke := ProxyMember{Name: "ambari-qa", Kind: KindUser}
	hadoop := ProxyMember{Name: "hadoop", Kind: KindGroup}

	return &Manifest{
		Distribution: "hdp",
		Identities: buildIdentities([]userDecl{
			{name: "accumulo", secondaryGroups: []string{"hadoop"}},
			{name: "activity_analyzer", secondaryGroups: []string{"hadoop"}},
			{name: "activity_explorer", secondaryGroups: []string{"hadoop"}},
			{name: "ambari-qa", secondaryGroups: []string{"hadoop"}},
			{name: "ambari-server", secondaryGroups: []string{"hadoop"}},
			{name: "ams", secondaryGroups: []string{"hadoop"}},
			{name: "anonymous"},
			{name: "atlas", secondaryGroups: []string{"hadoop"}},
			{name: "druid", secondaryGroups: []string{"hadoop"}},
			{name: "falcon", secondaryGroups: []string{"hadoop"}},
			{name: "flume", secondaryGroups: []string{"hadoop"}},
			{name: "gpadmin", secondaryGroups: []string{"hadoop"}},
			{name: "hadoopqa", secondaryGroups: []string{"hadoop"}},
			{name: "hbase", secondaryGroups: []string{"hadoop"}},
			{name: "hcat", secondaryGroups: []string{"hadoop"}},
			{name: "hdfs", secondaryGroups: []string{"hadoop"}},
			{name: "hive", secondaryGroups: []string{"hadoop"}},
			{name: "HTTP", secondaryGroups: []string{"hadoop"}},
			{name: "hue", secondaryGroups: []string{"hadoop"}},
			{name: "infra-solr", secondaryGroups: []string{"hadoop"}},
			{name: "kafka", secondaryGroups: []string{"hadoop"}},
			{name: "keyadmin", secondaryGroups: []string{"hadoop"}},
			{name: "kms", secondaryGroups: []string{"hadoop"}},
			{name: "knox", secondaryGroups: []string{"hadoop"}},
			{name: "livy", secondaryGroups: []string{"hadoop"}},
			{name: "logsearch", secondaryGroups: []string{"hadoop"}},
			{name: "mahout", secondaryGroups: []string{"hadoop"}},
			{name: "mapred", secondaryGroups: []string{"hadoop"}},
			{name: "oozie", secondaryGroups: []string{"hadoop"}},
			{name: "ranger", secondaryGroups: []string{"hadoop"}},
			{name: "rangerlookup", secondaryGroups: []string{"hadoop"}},
			{name: "spark", secondaryGroups: []string{"hadoop"}},
			{name: "sqoop", secondaryGroups: []string{"hadoop"}},
			{name: "storm", secondaryGroups: []string{"hadoop"}},
			{name: "tez", secondaryGroups: []string{"hadoop"}},
			{name: "tracer", secondaryGroups: []string{"hadoop"}},
			{name: "yarn", secondaryGroups: []string{"hadoop"}},
			{name: "yarn-ats", secondaryGroups: []string{"hadoop"}},
			{name: "yarn-ats-hbase", secondaryGroups: []string{"hadoop"}},
			{name: "zeppelin", secondaryGroups: []string{"hadoop"}},
			{name: "zookeeper", secondaryGroups: []string{"hadoop"}},
		}),
		ProxyUsers: []ProxyUserEntry{
			{Name: "ambari-server", Members: []ProxyMember{smoke}},
			{Name: "flume", Members: []ProxyMember{smoke, hadoop}},
			{Name: "hbase", Members: []ProxyMember{smoke, hadoop}},
			{Name: "hcat", Members: []ProxyMember{smoke, hadoop}},
			{Name: "hive", Members: []ProxyMember{smoke, hadoop}},
			{Name: "HTTP", Members: []ProxyMember{smoke}},
			{Name: "knox", Members: []ProxyMember{smoke}},
			{Name: "livy", Members: []ProxyMember{smoke, hadoop}},
			{Name: "oozie", Members: []ProxyMember{smoke, hadoop}},
			{Name: "yarn", Members: []ProxyMember{smoke, hadoop}},
		},
		Directories: []DirectoryRule{
			{Path: "/", Mode: 0o755, Owner: "hdfs", Group: "hadoop"},
			{Path: "/app-logs", Mode: 0o1777, Owner: "yarn", Group: "hadoop"},
			{Path: "/app-logs/ambari-qa", Mode: 0o770, Owner: "ambari-qa", Group: "hadoop"},
			{Path: "/app-logs/ambari-qa/logs", Mode: 0o770, Owner: "ambari-qa", Group: "hadoop"},
			{Path: "/apps", Mode: 0o755, Owner: "hdfs", Group: "hadoop"},
			{Path: "/apps/accumulo", Mode: 0o750, Owner: "accumulo", Group: "hadoop"},
			{Path: "/apps/falcon", Mode: 0o777, Owner: "falcon", Group: "hdfs"},
			{Path: "/apps/hbase", Mode: 0o755, Owner: "hdfs", Group: "hadoop"},
			{Path: "/apps/hbase/data", Mode: 0o775, Owner: "hbase", Group: "hadoop"},
			{Path: "/apps/hbase/staging", Mode: 0o711, Owner: "hbase", Group: "hadoop"},
			{Path: "/apps/hive", Mode: 0o755, Owner: "hdfs", Group: "hdfs"},
			{Path: "/apps/hive/warehouse", Mode: 0o777, Owner: "hive", Group: "hdfs"},
			{Path: "/apps/tez", Mode: 0o755, Owner: "tez", Group: "hdfs"},
			{Path: "/apps/webhcat", Mode: 0o755, Owner: "hcat", Group: "hdfs"},
			{Path: "/ats", Mode: 0o755, Owner: "yarn", Group: "hdfs"},
			{Path: "/ats/done", Mode: 0o775, Owner: "yarn", Group: "hdfs"},
			{Path: "/atsv2", Mode: 0o755, Owner: "yarn-ats", Group: "hadoop"},
			{Path: "/mapred", Mode: 0o755, Owner: "mapred", Group: "hadoop"},
			{Path: "/mapred/system", Mode: 0o755, Owner: "mapred", Group: "hadoop"},
			{Path: "/system", Mode: 0o755, Owner: "yarn", Group: "hadoop"},
			{Path: "/system/yarn", Mode: 0o755, Owner: "yarn", Group: "hadoop"},
			{Path: "/system/yarn/node-labels", Mode: 0o700, Owner: "yarn", Group: "hadoop"},
			{Path: "/tmp", Mode: 0o1777, Owner: "hdfs", Group: "hdfs"},
			{Path: "/tmp/hive", Mode: 0o777, Owner: "ambari-qa", Group: "hdfs"},
			{Path: "/user", Mode: 0o755, Owner: "hdfs", Group: "hdfs"},
			{Path: "/user/ambari-qa", Mode: 0o770, Owner: "ambari-qa", Group: "hdfs"},
			{Path: "/user/hcat", Mode: 0o755, Owner: "hcat", Group: "hdfs"},
			{Path: "/user/hdfs", Mode: 0o755, Owner: "hdfs", Group: "hdfs"},
			{Path: "/user/hive", Mode: 0o700, Owner: "hive", Group: "hdfs"},
			{Path: "/user/hue", Mode: 0o755, Owner: "hue", Group: "hue"},
			{Path: "/user/oozie", Mode: 0o775, Owner: "oozie", Group: "hdfs"},
			{Path: "/user/yarn", Mode: 0o755, Owner: "yarn", Group: "hdfs"},
		},
	}
}
